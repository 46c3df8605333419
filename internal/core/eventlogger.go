package core

import "github.com/valter-silva-au/todo/pkg/models"

// EventLogger is the subset of the observability event log that the task
// store needs. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType models.EventType, change models.TaskChange) error
}
