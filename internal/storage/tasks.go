package storage

import (
	"encoding/json"
	"fmt"

	"github.com/valter-silva-au/todo/pkg/models"
)

// DefaultTasksKey is the key the task collection is stored under.
const DefaultTasksKey = "tasks"

// TaskStorage persists the whole task collection as one serialized value.
type TaskStorage interface {
	Read() []models.Task
	Write(tasks []models.Task) error
}

type localTaskStorage struct {
	store LocalStore
	key   string
}

// NewTaskStorage creates a TaskStorage that keeps the collection as a JSON
// array under key in store. An empty key selects DefaultTasksKey.
func NewTaskStorage(store LocalStore, key string) TaskStorage {
	if key == "" {
		key = DefaultTasksKey
	}
	return &localTaskStorage{store: store, key: key}
}

// Read returns the persisted collection. A missing key, an unreadable store,
// or a value that does not parse all yield an empty collection.
func (s *localTaskStorage) Read() []models.Task {
	raw, ok, err := s.store.GetItem(s.key)
	if err != nil || !ok {
		return []models.Task{}
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil || tasks == nil {
		return []models.Task{}
	}
	return tasks
}

// Write replaces the stored value with the serialized collection.
func (s *localTaskStorage) Write(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("writing tasks: marshaling JSON: %w", err)
	}
	if err := s.store.SetItem(s.key, string(data)); err != nil {
		return fmt.Errorf("writing tasks: %w", err)
	}
	return nil
}
