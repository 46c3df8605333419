package core

import (
	"sync"
	"time"
)

// IDGenerator hands out unique task IDs.
type IDGenerator interface {
	NextID() int64
	// Observe records an ID that is already in use so it is never handed out.
	Observe(id int64)
}

// clockIDGenerator issues millisecond timestamps, bumping by one whenever the
// clock has not advanced past the last issued or observed ID.
type clockIDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewIDGenerator creates an IDGenerator driven by the wall clock.
func NewIDGenerator() IDGenerator {
	return NewIDGeneratorWithClock(time.Now)
}

// NewIDGeneratorWithClock creates an IDGenerator that reads time from now.
func NewIDGeneratorWithClock(now func() time.Time) IDGenerator {
	return &clockIDGenerator{now: now}
}

func (g *clockIDGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

func (g *clockIDGenerator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.last {
		g.last = id
	}
}
