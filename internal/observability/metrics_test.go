package observability

import (
	"testing"
	"time"

	"github.com/valter-silva-au/todo/pkg/models"
)

func seedLifecycle(t *testing.T, log EventLog, base time.Time) {
	t.Helper()
	writeEvents(t, log,
		Event{Time: base, Type: models.EventStoreLoaded},
		Event{Time: base.Add(time.Hour), Type: models.EventTaskAdded, TaskChange: models.TaskChange{TaskID: 1}},
		Event{Time: base.Add(2 * time.Hour), Type: models.EventTaskAdded,
			TaskChange: models.TaskChange{TaskID: 2, NewStatus: models.StatusReview}},
		Event{Time: base.Add(3 * time.Hour), Type: models.EventStatusChanged,
			TaskChange: models.TaskChange{TaskID: 1, NewStatus: models.StatusNotStarted}},
		Event{Time: base.Add(4 * time.Hour), Type: models.EventStatusChanged,
			TaskChange: models.TaskChange{TaskID: 1, OldStatus: models.StatusNotStarted, NewStatus: models.StatusInProgress}},
		Event{Time: base.Add(5 * time.Hour), Type: models.EventTaskEdited, TaskChange: models.TaskChange{TaskID: 2}},
		Event{Time: base.Add(6 * time.Hour), Type: models.EventTaskDeleted, TaskChange: models.TaskChange{TaskID: 2}},
	)
}

func TestMetricsCalculator_Calculate(t *testing.T) {
	log, _ := newTestEventLog(t)
	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	seedLifecycle(t, log, base)

	m, err := NewMetricsCalculator(log).Calculate(MetricsQuery{Since: base.Add(-time.Hour)})
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}

	if m.EventCount != 7 {
		t.Errorf("EventCount = %d, want 7", m.EventCount)
	}
	if m.TasksAdded != 2 || m.TasksAdvanced != 2 {
		t.Errorf("TasksAdded = %d, TasksAdvanced = %d, want 2 and 2", m.TasksAdded, m.TasksAdvanced)
	}
	if m.TasksEdited != 1 || m.TasksDeleted != 1 {
		t.Errorf("TasksEdited = %d, TasksDeleted = %d, want 1 and 1", m.TasksEdited, m.TasksDeleted)
	}
	if len(m.TasksByStatus) != 2 || m.TasksByStatus["not-started"] != 1 || m.TasksByStatus["in-progress"] != 1 {
		t.Errorf("TasksByStatus = %v", m.TasksByStatus)
	}
	if m.OldestEvent == nil || !m.OldestEvent.Equal(base) {
		t.Errorf("OldestEvent = %v, want %v", m.OldestEvent, base)
	}
	if m.NewestEvent == nil || !m.NewestEvent.Equal(base.Add(6*time.Hour)) {
		t.Errorf("NewestEvent = %v", m.NewestEvent)
	}
}

func TestMetricsCalculator_SingleTask(t *testing.T) {
	log, _ := newTestEventLog(t)
	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	seedLifecycle(t, log, base)

	mc := NewMetricsCalculator(log)

	m, err := mc.Calculate(MetricsQuery{TaskID: 2})
	if err != nil {
		t.Fatal(err)
	}
	if m.EventCount != 3 || m.TasksAdded != 1 || m.TasksEdited != 1 || m.TasksDeleted != 1 || m.TasksAdvanced != 0 {
		t.Errorf("metrics for task 2 = %+v", m)
	}

	m, err = mc.Calculate(MetricsQuery{Since: base.Add(210 * time.Minute), TaskID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if m.EventCount != 1 || m.TasksByStatus["in-progress"] != 1 {
		t.Errorf("recent metrics for task 1 = %+v", m)
	}
}

func TestMetricsCalculator_SinceExcludesOlderEvents(t *testing.T) {
	log, _ := newTestEventLog(t)
	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	writeEvents(t, log,
		Event{Time: base, Type: models.EventTaskAdded},
		Event{Time: base.Add(48 * time.Hour), Type: models.EventTaskAdded},
	)

	m, err := NewMetricsCalculator(log).Calculate(MetricsQuery{Since: base.Add(24 * time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if m.TasksAdded != 1 {
		t.Errorf("TasksAdded = %d, want 1", m.TasksAdded)
	}
}

func TestMetricsCalculator_EmptyLog(t *testing.T) {
	log, _ := newTestEventLog(t)

	m, err := NewMetricsCalculator(log).Calculate(MetricsQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if m.EventCount != 0 || m.OldestEvent != nil || m.TasksByStatus == nil {
		t.Errorf("unexpected metrics for empty log: %+v", m)
	}
}

func TestParseSince(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"7d", now.AddDate(0, 0, -7), false},
		{"30d", now.AddDate(0, 0, -30), false},
		{"24h", now.Add(-24 * time.Hour), false},
		{"1h", now.Add(-time.Hour), false},
		{"", time.Time{}, true},
		{"x", time.Time{}, true},
		{"7x", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSince(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSince(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseSince(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
