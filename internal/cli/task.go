package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/valter-silva-au/todo/pkg/models"
)

// parseTaskID parses a task id argument.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q: must be a number", arg)
	}
	return id, nil
}

// printTask writes a multi-line summary of a single task.
func printTask(w io.Writer, t models.Task) {
	fmt.Fprintf(w, "  %-12s %d\n", "ID:", t.ID)
	fmt.Fprintf(w, "  %-12s %s\n", "Name:", t.Name)
	fmt.Fprintf(w, "  %-12s %s\n", "Description:", t.Description)
	fmt.Fprintf(w, "  %-12s %s\n", "Due:", t.FormattedDueDate())
	fmt.Fprintf(w, "  %-12s %s\n", "Assigned to:", t.AssignedTo)
	fmt.Fprintf(w, "  %-12s %s\n", "Status:", t.Status.Label())
}

// isDueSoon reports whether an open task falls inside the due-soon window.
func isDueSoon(t models.Task) bool {
	return t.Status != models.StatusCompleted && t.DueSoon(now(), DueSoonDays)
}
