package core

import (
	"sync"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// For any clock, including one that stalls or runs backwards, and any set of
// observed ids, every issued id is strictly greater than all ids issued or
// observed before it.
func TestProperty_IDsStrictlyIncrease(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
		offsets := rapid.SliceOfN(rapid.IntRange(-5000, 5000), 1, 60).Draw(rt, "offsets")

		i := 0
		gen := NewIDGeneratorWithClock(func() time.Time {
			return base.Add(time.Duration(offsets[i%len(offsets)]) * time.Millisecond)
		})

		var last int64
		for step := 0; step < len(offsets); step++ {
			if rapid.Bool().Draw(rt, "observe") {
				obs := base.UnixMilli() + int64(rapid.IntRange(-5000, 10000).Draw(rt, "observed"))
				gen.Observe(obs)
				if obs > last {
					last = obs
				}
			}
			id := gen.NextID()
			i++
			if id <= last {
				rt.Fatalf("step %d: id %d not greater than previous max %d", step, id, last)
			}
			last = id
		}
	})
}

// Concurrent callers never receive the same id.
func TestProperty_IDsUniqueUnderConcurrency(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		workers := rapid.IntRange(2, 8).Draw(rt, "workers")
		perWorker := rapid.IntRange(1, 50).Draw(rt, "perWorker")

		fixed := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
		gen := NewIDGeneratorWithClock(func() time.Time { return fixed })

		ids := make(chan int64, workers*perWorker)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perWorker; j++ {
					ids <- gen.NextID()
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]struct{}, workers*perWorker)
		for id := range ids {
			if _, dup := seen[id]; dup {
				rt.Fatalf("duplicate id %d", id)
			}
			seen[id] = struct{}{}
		}
	})
}
