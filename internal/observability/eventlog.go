package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valter-silva-au/todo/pkg/models"
)

// Event is one recorded task store activity. The task payload is flattened
// into the JSON line next to the id, time and type.
type Event struct {
	ID   string           `json:"id"`
	Time time.Time        `json:"time"`
	Type models.EventType `json:"type"`
	models.TaskChange
}

// EventFilter selects events when reading the log. Zero-valued fields match
// everything.
type EventFilter struct {
	Since  time.Time
	Until  time.Time
	Type   models.EventType
	TaskID int64
}

// Match reports whether e satisfies every criterion set on f.
func (f EventFilter) Match(e Event) bool {
	switch {
	case !f.Since.IsZero() && e.Time.Before(f.Since):
		return false
	case !f.Until.IsZero() && e.Time.After(f.Until):
		return false
	case f.Type != "" && e.Type != f.Type:
		return false
	case f.TaskID != 0 && e.TaskID != f.TaskID:
		return false
	}
	return true
}

// EventLog records task store events and reads them back in write order.
type EventLog interface {
	Write(event Event) error
	Read(filter EventFilter) ([]Event, error)
	Close() error
}

type jsonlEventLog struct {
	path string
	mu   sync.Mutex
	file *os.File
}

// NewJSONLEventLog opens (or creates) an append-only log with one JSON
// event per line.
func NewJSONLEventLog(path string) (EventLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	return &jsonlEventLog{path: path, file: f}, nil
}

// Write appends event, stamping a random ID and the current UTC time when
// they are unset.
func (l *jsonlEventLog) Write(event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := json.NewEncoder(l.file).Encode(event); err != nil {
		return fmt.Errorf("writing %s event: %w", event.Type, err)
	}
	return nil
}

func (l *jsonlEventLog) Read(filter EventFilter) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening event log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	events, err := decodeEvents(f, filter)
	if err != nil {
		return nil, fmt.Errorf("scanning event log: %w", err)
	}
	return events, nil
}

func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing event log: %w", err)
	}
	return nil
}

// decodeEvents returns the events in r that match filter. Blank and
// malformed lines are skipped.
func decodeEvents(r io.Reader, filter EventFilter) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		if filter.Match(e) {
			events = append(events, e)
		}
	}
	return events, scanner.Err()
}
