package core

import (
	"fmt"
	"strings"

	"github.com/valter-silva-au/todo/pkg/models"
)

// ValidationError reports task fields that were missing or invalid.
type ValidationError struct {
	// Fields lists the required fields that were empty.
	Fields []string
	// Reason is set when a field was present but invalid.
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return "all fields are required: missing " + strings.Join(e.Fields, ", ")
	}
	return fmt.Sprintf("invalid task: %s", e.Reason)
}

// ValidateDueDate rejects a due date that is not a YYYY-MM-DD calendar date.
// An empty value passes so that required-field checks can report it.
func ValidateDueDate(due string) error {
	if due == "" || models.ValidDueDate(due) {
		return nil
	}
	return &ValidationError{Reason: fmt.Sprintf("due date %q must be a date in YYYY-MM-DD form", due)}
}
