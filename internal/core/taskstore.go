package core

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/valter-silva-au/todo/internal/storage"
	"github.com/valter-silva-au/todo/pkg/models"
)

// TaskStore owns the authoritative task collection for a session and mirrors
// every mutation into TaskStorage.
type TaskStore interface {
	// Load reads the persisted collection and marks the store ready. Until
	// Load has run, mutations change memory only and are never written.
	Load()
	Ready() bool
	Add(name, description, dueDate, assignedTo, status string) (models.Task, error)
	Edit(updated models.Task) (bool, error)
	Delete(id int64) (bool, error)
	AdvanceStatus(id int64) (models.Task, bool, error)
	Filter(status models.TaskStatus) iter.Seq[models.Task]
	Tasks() []models.Task
	Get(id int64) (models.Task, bool)
	Counts() map[models.TaskStatus]int
}

type taskStore struct {
	mu      sync.Mutex
	storage storage.TaskStorage
	idGen   IDGenerator
	events  EventLogger
	tasks   []models.Task
	ready   bool
}

// NewTaskStore creates a TaskStore persisting through ts. events may be nil.
func NewTaskStore(ts storage.TaskStorage, idGen IDGenerator, events EventLogger) TaskStore {
	if idGen == nil {
		idGen = NewIDGenerator()
	}
	return &taskStore{
		storage: ts,
		idGen:   idGen,
		events:  events,
		tasks:   []models.Task{},
	}
}

func (s *taskStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = s.storage.Read()
	for _, t := range s.tasks {
		s.idGen.Observe(t.ID)
	}
	s.ready = true
	s.logEvent(models.EventStoreLoaded, models.TaskChange{Count: len(s.tasks)})
}

func (s *taskStore) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *taskStore) Add(name, description, dueDate, assignedTo, status string) (models.Task, error) {
	var missing []string
	for _, f := range []struct{ field, value string }{
		{"name", name},
		{"description", description},
		{"dueDate", dueDate},
		{"assignedTo", assignedTo},
	} {
		if f.value == "" {
			missing = append(missing, f.field)
		}
	}
	if len(missing) > 0 {
		return models.Task{}, &ValidationError{Fields: missing}
	}
	st, err := models.ParseStatus(status)
	if err != nil {
		return models.Task{}, &ValidationError{Reason: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := models.Task{
		ID:          s.idGen.NextID(),
		Name:        name,
		Description: description,
		DueDate:     dueDate,
		AssignedTo:  assignedTo,
		Status:      st,
	}
	s.tasks = append(s.tasks, task)
	s.logEvent(models.EventTaskAdded, models.TaskChange{TaskID: task.ID, NewStatus: task.Status})

	if err := s.persist(); err != nil {
		return task, fmt.Errorf("adding task: %w", err)
	}
	return task, nil
}

func (s *taskStore) Edit(updated models.Task) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.replace(updated)
	if found {
		s.logEvent(models.EventTaskEdited, models.TaskChange{TaskID: updated.ID})
	}
	if err := s.persist(); err != nil {
		return found, fmt.Errorf("editing task %d: %w", updated.ID, err)
	}
	return found, nil
}

func (s *taskStore) Delete(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
	found := len(s.tasks) != before
	if found {
		s.logEvent(models.EventTaskDeleted, models.TaskChange{TaskID: id})
	}
	if err := s.persist(); err != nil {
		return found, fmt.Errorf("deleting task %d: %w", id, err)
	}
	return found, nil
}

func (s *taskStore) AdvanceStatus(id int64) (models.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		if err := s.persist(); err != nil {
			return models.Task{}, false, fmt.Errorf("advancing task %d: %w", id, err)
		}
		return models.Task{}, false, nil
	}

	updated := s.tasks[i]
	old := updated.Status
	updated.Status = old.Next()
	s.replace(updated)
	s.logEvent(models.EventStatusChanged, models.TaskChange{TaskID: id, OldStatus: old, NewStatus: updated.Status})

	if err := s.persist(); err != nil {
		return updated, true, fmt.Errorf("advancing task %d: %w", id, err)
	}
	return updated, true, nil
}

// Filter returns the tasks whose status equals status, or every task when
// status is unset. The sequence iterates over a snapshot taken at call time.
func (s *taskStore) Filter(status models.TaskStatus) iter.Seq[models.Task] {
	snapshot := s.Tasks()
	return func(yield func(models.Task) bool) {
		for _, t := range snapshot {
			if status != models.StatusUnset && t.Status != status {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func (s *taskStore) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

func (s *taskStore) Get(id int64) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

// Counts returns the number of tasks per status. Unset statuses are counted
// under StatusUnset so the counts always sum to the collection size.
func (s *taskStore) Counts() map[models.TaskStatus]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[models.TaskStatus]int)
	for _, t := range s.tasks {
		counts[t.Status]++
	}
	return counts
}

func (s *taskStore) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

func (s *taskStore) replace(updated models.Task) bool {
	i := s.indexOf(updated.ID)
	if i < 0 {
		return false
	}
	s.tasks[i] = updated
	return true
}

// persist writes the full collection once the store has been loaded.
func (s *taskStore) persist() error {
	if !s.ready {
		return nil
	}
	return s.storage.Write(s.tasks)
}

func (s *taskStore) logEvent(eventType models.EventType, change models.TaskChange) {
	if s.events == nil {
		return
	}
	_ = s.events.LogEvent(eventType, change) // Non-fatal: observability must not block mutations.
}
