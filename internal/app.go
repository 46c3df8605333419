// Package internal provides the App struct that wires all components of the
// todo manager together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"

	"github.com/valter-silva-au/todo/internal/cli"
	"github.com/valter-silva-au/todo/internal/core"
	"github.com/valter-silva-au/todo/internal/observability"
	"github.com/valter-silva-au/todo/internal/storage"
	"github.com/valter-silva-au/todo/pkg/models"
)

// App holds all service dependencies for the todo manager.
type App struct {
	BasePath string
	Config   *models.GlobalConfig

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Storage layer
	LocalStore  storage.LocalStore
	TaskStorage storage.TaskStorage

	// Core services
	IDGen     core.IDGenerator
	TaskStore core.TaskStore

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of the todo manager and loads the
// persisted task list. basePath is the directory holding .todoconfig and the
// data files.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	globalCfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		// Use defaults if the config file is unreadable.
		globalCfg = core.DefaultGlobalConfig()
	}
	app.Config = globalCfg

	// --- Storage layer ---
	app.LocalStore = storage.NewFileLocalStore(app.dataPath(globalCfg.Storage.File), globalCfg.Storage.Origin)
	app.TaskStorage = storage.NewTaskStorage(app.LocalStore, globalCfg.Storage.Key)

	// --- Observability (non-fatal) ---
	if globalCfg.Events.Enabled {
		eventPath := app.dataPath(globalCfg.Events.File)
		_ = os.MkdirAll(filepath.Dir(eventPath), 0o755)
		eventLog, err := observability.NewJSONLEventLog(eventPath)
		if err == nil {
			app.EventLog = eventLog
			app.MetricsCalc = observability.NewMetricsCalculator(eventLog)
		}
	}
	app.AlertEngine = observability.NewAlertEngine(observability.AlertThresholds{
		DueSoonDays: globalCfg.DueSoonDays,
	})

	// --- Core services ---
	var events core.EventLogger
	if app.EventLog != nil {
		events = &eventLogAdapter{log: app.EventLog}
	}
	app.IDGen = core.NewIDGenerator()
	app.TaskStore = core.NewTaskStore(app.TaskStorage, app.IDGen, events)
	app.TaskStore.Load()

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.TaskStore = app.TaskStore
	cli.DueSoonDays = globalCfg.DueSoonDays

	cli.EventLog = app.EventLog
	cli.AlertEngine = app.AlertEngine
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

func (a *App) dataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.BasePath, name)
}

// ResolveBasePath determines the data directory. It checks the TODO_HOME env
// var, then walks up from the current directory looking for .todoconfig, and
// falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("TODO_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	cwd := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, ".todoconfig")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType models.EventType, change models.TaskChange) error {
	return a.log.Write(observability.Event{Type: eventType, TaskChange: change})
}
