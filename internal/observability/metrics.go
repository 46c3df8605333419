package observability

import (
	"fmt"
	"time"

	"github.com/valter-silva-au/todo/pkg/models"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	TasksAdded    int            `json:"tasks_added"`
	TasksEdited   int            `json:"tasks_edited"`
	TasksDeleted  int            `json:"tasks_deleted"`
	TasksAdvanced int            `json:"tasks_advanced"`
	TasksByStatus map[string]int `json:"tasks_by_status"`
	EventCount    int            `json:"event_count"`
	OldestEvent   *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent   *time.Time     `json:"newest_event,omitempty"`
}

// MetricsQuery bounds the events a calculation covers. A zero TaskID
// covers every task.
type MetricsQuery struct {
	Since  time.Time
	TaskID int64
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(q MetricsQuery) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads the events selected by q and aggregates them into
// metrics. TasksByStatus counts status changes by their target status.
func (mc *metricsCalculator) Calculate(q MetricsQuery) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: q.Since, TaskID: q.TaskID})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		TasksByStatus: make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case models.EventTaskAdded:
			m.TasksAdded++
		case models.EventTaskEdited:
			m.TasksEdited++
		case models.EventTaskDeleted:
			m.TasksDeleted++
		case models.EventStatusChanged:
			m.TasksAdvanced++
			m.TasksByStatus[string(event.NewStatus)]++
		}
	}

	return m, nil
}

// ParseSince parses a human-friendly duration string like "7d", "30d", or
// "24h" into the corresponding time before now.
func ParseSince(s string, now time.Time) (time.Time, error) {
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}
