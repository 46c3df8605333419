package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valter-silva-au/todo/internal/cli"
	"github.com/valter-silva-au/todo/internal/observability"
	"github.com/valter-silva-au/todo/pkg/models"
)

func TestResolveBasePath_TodoHomeSet(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TODO_HOME", tmpDir)

	got := ResolveBasePath()
	if got != tmpDir {
		t.Errorf("ResolveBasePath() = %q, want %q", got, tmpDir)
	}
}

func TestResolveBasePath_FindsTodoConfig(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "sub", "nested")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".todoconfig"), []byte("due_soon_days: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Chdir(subDir)
	t.Setenv("TODO_HOME", "")

	got := ResolveBasePath()
	if resolved, _ := filepath.EvalSymlinks(got); resolved != mustEvalSymlinks(t, tmpDir) {
		t.Errorf("ResolveBasePath() = %q, want %q (should find .todoconfig in parent)", got, tmpDir)
	}
}

func TestResolveBasePath_FallbackToCwd(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("TODO_HOME", "")

	got := ResolveBasePath()
	if resolved, _ := filepath.EvalSymlinks(got); resolved != mustEvalSymlinks(t, tmpDir) {
		t.Errorf("ResolveBasePath() = %q, want cwd %q", got, tmpDir)
	}
}

func mustEvalSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func TestNewApp_Success(t *testing.T) {
	dir := t.TempDir()

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	defer app.Close()

	if app.TaskStore == nil || !app.TaskStore.Ready() {
		t.Fatal("expected a loaded TaskStore")
	}
	if app.EventLog == nil || app.MetricsCalc == nil || app.AlertEngine == nil {
		t.Error("expected observability to be wired")
	}
	if cli.TaskStore != app.TaskStore {
		t.Error("cli.TaskStore not wired to app.TaskStore")
	}
	if cli.DueSoonDays != 3 {
		t.Errorf("cli.DueSoonDays = %d, want 3", cli.DueSoonDays)
	}
}

func TestNewApp_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewApp(dir)
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	task, err := first.TaskStore.Add("Report", "Write report", "2025-01-10", "Alice", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, _, err := first.TaskStore.AdvanceStatus(task.ID); err != nil {
		t.Fatalf("AdvanceStatus: %v", err)
	}
	_ = first.Close()

	if _, err := os.Stat(filepath.Join(dir, "localstorage.yaml")); err != nil {
		t.Fatalf("expected store file: %v", err)
	}

	second, err := NewApp(dir)
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	defer second.Close()

	got, ok := second.TaskStore.Get(task.ID)
	if !ok {
		t.Fatal("task not reloaded from disk")
	}
	if got.Status != models.StatusNotStarted {
		t.Errorf("status = %q, want not-started", got.Status)
	}

	// IDs handed out after reload never collide with loaded ones.
	next, err := second.TaskStore.Add("Next", "d", "2025-01-11", "Bob", "")
	if err != nil {
		t.Fatal(err)
	}
	if next.ID <= task.ID {
		t.Errorf("new id %d not greater than loaded id %d", next.ID, task.ID)
	}
}

func TestNewApp_EventsRecorded(t *testing.T) {
	dir := t.TempDir()

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	defer app.Close()

	task, err := app.TaskStore.Add("Report", "Write report", "2025-01-10", "Alice", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := app.TaskStore.Add("Other", "Something else", "2025-01-11", "Bob", ""); err != nil {
		t.Fatal(err)
	}
	if _, _, err := app.TaskStore.AdvanceStatus(task.ID); err != nil {
		t.Fatal(err)
	}

	events, err := app.EventLog.Read(observability.EventFilter{Type: models.EventTaskAdded})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(events) != 2 || events[0].ID == "" || events[0].TaskID != task.ID {
		t.Errorf("expected two stamped task.added events, got %+v", events)
	}

	history, err := app.EventLog.Read(observability.EventFilter{TaskID: task.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 || history[1].Type != models.EventStatusChanged || history[1].NewStatus != models.StatusNotStarted {
		t.Errorf("unexpected history for task %d: %+v", task.ID, history)
	}

	m, err := app.MetricsCalc.Calculate(observability.MetricsQuery{TaskID: task.ID})
	if err != nil {
		t.Fatal(err)
	}
	if m.TasksAdded != 1 || m.TasksAdvanced != 1 || m.TasksByStatus["not-started"] != 1 {
		t.Errorf("metrics for task %d = %+v", task.ID, m)
	}
}

func TestNewApp_ConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	cfg := strings.Join([]string{
		"storage:",
		"  file: data/store.yaml",
		"  origin: work",
		"  key: work-tasks",
		"events:",
		"  enabled: false",
		"due_soon_days: 5",
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, ".todoconfig"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	defer app.Close()

	if app.EventLog != nil || app.MetricsCalc != nil {
		t.Error("event log should be disabled")
	}
	if app.Config.DueSoonDays != 5 || cli.DueSoonDays != 5 {
		t.Errorf("DueSoonDays not applied: config %d, cli %d", app.Config.DueSoonDays, cli.DueSoonDays)
	}

	if _, err := app.TaskStore.Add("Report", "Write report", "2025-01-10", "Alice", ""); err != nil {
		t.Fatal(err)
	}
	keys, err := app.LocalStore.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "work-tasks" {
		t.Errorf("keys = %v, want [work-tasks]", keys)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "store.yaml")); err != nil {
		t.Errorf("expected store under data/: %v", err)
	}
}

func TestNewApp_InvalidConfigFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".todoconfig"), []byte("due_soon_days: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	defer app.Close()

	if app.Config.DueSoonDays != 3 {
		t.Errorf("DueSoonDays = %d, want default 3", app.Config.DueSoonDays)
	}
}

func TestApp_CloseNilEventLog(t *testing.T) {
	app := &App{}
	if err := app.Close(); err != nil {
		t.Errorf("Close() on empty App: %v", err)
	}
}
