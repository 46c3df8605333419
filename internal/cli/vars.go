package cli

import (
	"time"

	"github.com/valter-silva-au/todo/internal/core"
	"github.com/valter-silva-au/todo/internal/observability"
)

// Service instances, set during app initialization in app.go.
var (
	TaskStore core.TaskStore
	BasePath  string

	// DueSoonDays is the window, in days, within which an open task is
	// flagged as due soon.
	DueSoonDays = 3
)

// Observability service instances, set during app initialization in app.go.
var (
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
)

// now is swapped in tests.
var now = time.Now
