package observability

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/valter-silva-au/todo/pkg/models"
	"pgregory.net/rapid"
)

// For any mix of mutation events, each counter equals the number of events
// of its type and status-change targets sum to TasksAdvanced.
func TestMetricsCountsMatchEvents(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		logPath := filepath.Join(t.TempDir(), "events.jsonl")
		el, err := NewJSONLEventLog(logPath)
		if err != nil {
			t.Fatalf("creating event log: %v", err)
		}
		defer el.Close()

		types := []models.EventType{models.EventTaskAdded, models.EventTaskEdited, models.EventTaskDeleted, models.EventStatusChanged}
		want := make(map[models.EventType]int)
		baseTime := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

		n := rapid.IntRange(0, 30).Draw(rt, "n")
		for i := 0; i < n; i++ {
			e := Event{
				Time:       baseTime.Add(time.Duration(i) * time.Minute),
				Type:       rapid.SampledFrom(types).Draw(rt, fmt.Sprintf("type_%d", i)),
				TaskChange: models.TaskChange{TaskID: int64(i + 1)},
			}
			if e.Type == models.EventStatusChanged {
				e.NewStatus = rapid.SampledFrom(models.AllStatuses()).Draw(rt, fmt.Sprintf("status_%d", i))
			}
			want[e.Type]++
			if err := el.Write(e); err != nil {
				t.Fatalf("writing event: %v", err)
			}
		}

		m, err := NewMetricsCalculator(el).Calculate(MetricsQuery{Since: baseTime.Add(-time.Hour)})
		if err != nil {
			t.Fatalf("calculating metrics: %v", err)
		}

		if m.EventCount != n {
			rt.Errorf("EventCount = %d, want %d", m.EventCount, n)
		}
		if m.TasksAdded != want[models.EventTaskAdded] || m.TasksEdited != want[models.EventTaskEdited] ||
			m.TasksDeleted != want[models.EventTaskDeleted] || m.TasksAdvanced != want[models.EventStatusChanged] {
			rt.Errorf("metrics %+v do not match event counts %v", m, want)
		}
		sum := 0
		for _, c := range m.TasksByStatus {
			sum += c
		}
		if sum != m.TasksAdvanced {
			rt.Errorf("TasksByStatus sums to %d, want %d", sum, m.TasksAdvanced)
		}
	})
}
