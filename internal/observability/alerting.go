package observability

import (
	"fmt"
	"sort"
	"time"

	"github.com/valter-silva-au/todo/pkg/models"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert represents a triggered alert condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TaskID      int64         `json:"task_id"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when alerts should fire.
type AlertThresholds struct {
	DueSoonDays int `yaml:"due_soon_days" json:"due_soon_days"`
}

// DefaultAlertThresholds returns the default alert thresholds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{DueSoonDays: 3}
}

// AlertEngine evaluates due-date conditions against a task collection.
type AlertEngine interface {
	Evaluate(tasks []models.Task, now time.Time) []Alert
}

type alertEngine struct {
	thresholds AlertThresholds
}

// NewAlertEngine creates a new AlertEngine with the given thresholds.
func NewAlertEngine(thresholds AlertThresholds) AlertEngine {
	return &alertEngine{thresholds: thresholds}
}

// Evaluate returns an alert for every unfinished task that is overdue
// (high) or due within the threshold (medium), plus one low alert per task
// whose status was never set. Alerts are ordered by severity, then task ID.
func (ae *alertEngine) Evaluate(tasks []models.Task, now time.Time) []Alert {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var alerts []Alert
	for _, t := range tasks {
		if t.Status == models.StatusUnset {
			alerts = append(alerts, Alert{
				ID:          fmt.Sprintf("unset-%d", t.ID),
				Condition:   "status_unset",
				Severity:    SeverityLow,
				Message:     fmt.Sprintf("task %d (%s) has no status", t.ID, t.Name),
				TaskID:      t.ID,
				TriggeredAt: now,
			})
		}
		if t.Status == models.StatusCompleted {
			continue
		}

		due, err := time.ParseInLocation(models.DueDateLayout, t.DueDate, now.Location())
		if err != nil {
			continue
		}
		switch {
		case due.Before(today):
			alerts = append(alerts, Alert{
				ID:          fmt.Sprintf("overdue-%d", t.ID),
				Condition:   "task_overdue",
				Severity:    SeverityHigh,
				Message:     fmt.Sprintf("task %d (%s) was due on %s", t.ID, t.Name, t.FormattedDueDate()),
				TaskID:      t.ID,
				TriggeredAt: now,
			})
		case t.DueSoon(today, ae.thresholds.DueSoonDays):
			alerts = append(alerts, Alert{
				ID:          fmt.Sprintf("due-soon-%d", t.ID),
				Condition:   "task_due_soon",
				Severity:    SeverityMedium,
				Message:     fmt.Sprintf("task %d (%s) is due on %s", t.ID, t.Name, t.FormattedDueDate()),
				TaskID:      t.ID,
				TriggeredAt: now,
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := severityRank(alerts[i].Severity), severityRank(alerts[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return alerts[i].TaskID < alerts[j].TaskID
	})
	return alerts
}

func severityRank(s AlertSeverity) int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}
