package models

import (
	"fmt"
	"time"
)

// TaskStatus represents the current workflow stage of a task.
type TaskStatus string

const (
	StatusUnset      TaskStatus = ""
	StatusNotStarted TaskStatus = "not-started"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusCompleted  TaskStatus = "completed"
)

// DueDateLayout is the ISO calendar date layout used for Task.DueDate.
const DueDateLayout = "2006-01-02"

// Task is a unit of work with a due date and an assignee.
// The JSON field names are the persisted wire format.
type Task struct {
	ID          int64      `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	DueDate     string     `json:"dueDate" yaml:"due_date"`
	AssignedTo  string     `json:"assignedTo" yaml:"assigned_to"`
	Status      TaskStatus `json:"status" yaml:"status"`
}

// AllStatuses returns the assignable statuses in lifecycle order.
func AllStatuses() []TaskStatus {
	return []TaskStatus{
		StatusNotStarted,
		StatusInProgress,
		StatusReview,
		StatusCompleted,
	}
}

// ParseStatus converts s into a TaskStatus. The empty string is accepted and
// yields StatusUnset.
func ParseStatus(s string) (TaskStatus, error) {
	switch st := TaskStatus(s); st {
	case StatusUnset, StatusNotStarted, StatusInProgress, StatusReview, StatusCompleted:
		return st, nil
	default:
		return StatusUnset, fmt.Errorf("invalid status %q: must be one of not-started, in-progress, review, completed", s)
	}
}

// Next returns the status that follows s in the cycle
// not-started -> in-progress -> review -> completed -> not-started.
// Unset and unknown values restart the cycle at not-started.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case StatusNotStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusReview
	case StatusReview:
		return StatusCompleted
	case StatusCompleted:
		return StatusNotStarted
	default:
		return StatusNotStarted
	}
}

// Label returns the human readable name of the status.
func (s TaskStatus) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In-Progress"
	case StatusReview:
		return "Review"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unset"
	}
}

// ActionLabel names the action that advances a task out of status s.
func (s TaskStatus) ActionLabel() string {
	switch s {
	case StatusInProgress:
		return "Mark to Review"
	case StatusReview:
		return "Mark Completed"
	case StatusCompleted:
		return "Reset Task"
	default:
		return "Accept Task"
	}
}

// ParseFilter converts a filter selection into the status to filter by.
// "all" and "" select every task and map to StatusUnset.
func ParseFilter(s string) (TaskStatus, error) {
	if s == "all" {
		return StatusUnset, nil
	}
	st, err := ParseStatus(s)
	if err != nil {
		return StatusUnset, fmt.Errorf("invalid filter %q: must be one of all, not-started, in-progress, review, completed", s)
	}
	return st, nil
}

// FilterSelections returns the five filter values offered to users.
func FilterSelections() []string {
	return []string{"all", "not-started", "in-progress", "review", "completed"}
}

// DueSoon reports whether the task is due between the calendar day of now
// and the given number of days ahead, inclusive. Days are counted on the
// calendar, so daylight saving transitions do not shift the window. Tasks
// with an unparseable due date are never due soon.
func (t Task) DueSoon(now time.Time, days int) bool {
	due, err := time.Parse(DueDateLayout, t.DueDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	diff := int(due.Sub(today).Hours()) / 24
	return !due.Before(today) && diff <= days
}

// ValidDueDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDueDate(s string) bool {
	_, err := time.Parse(DueDateLayout, s)
	return err == nil
}

// FormattedDueDate renders the due date as DD-MM-YYYY. Values that are not
// ISO dates are returned unchanged.
func (t Task) FormattedDueDate() string {
	due, err := time.Parse(DueDateLayout, t.DueDate)
	if err != nil {
		return t.DueDate
	}
	return due.Format("02-01-2006")
}
