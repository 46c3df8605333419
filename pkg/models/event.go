package models

// EventType names a task store activity recorded in the event log.
type EventType string

const (
	EventStoreLoaded   EventType = "store.loaded"
	EventTaskAdded     EventType = "task.added"
	EventTaskEdited    EventType = "task.edited"
	EventTaskDeleted   EventType = "task.deleted"
	EventStatusChanged EventType = "task.status_changed"
)

// TaskChange is the payload of a task store event. Fields that do not apply
// to an event type stay zero: TaskID is unset for store.loaded, OldStatus is
// only set for status changes, and NewStatus carries the initial status of an
// added task.
type TaskChange struct {
	TaskID    int64      `json:"task_id,omitempty"`
	OldStatus TaskStatus `json:"old_status,omitempty"`
	NewStatus TaskStatus `json:"new_status,omitempty"`
	Count     int        `json:"count,omitempty"`
}
