// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the task store as MCP tools for AI assistants.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/todo/internal/core"
	"github.com/valter-silva-au/todo/internal/observability"
	"github.com/valter-silva-au/todo/pkg/models"
)

// Server wraps the task store and exposes it as MCP tools.
type Server struct {
	server      *gomcp.Server
	store       core.TaskStore
	metricsCalc observability.MetricsCalculator
	alertEngine observability.AlertEngine
	now         func() time.Time
}

// NewServer creates a new MCP server over store. metricsCalc and alertEngine
// may be nil if observability is disabled.
func NewServer(store core.TaskStore, metricsCalc observability.MetricsCalculator, alertEngine observability.AlertEngine, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		store:       store,
		metricsCalc: metricsCalc,
		alertEngine: alertEngine,
		now:         time.Now,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "todo", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type taskIDInput struct {
	ID int64 `json:"id" jsonschema:"the numeric task id"`
}

type taskOutput struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	AssignedTo  string `json:"assigned_to"`
	Status      string `json:"status"`
	NextAction  string `json:"next_action"`
}

type listTasksInput struct {
	Status string `json:"status,omitempty" jsonschema:"filter by status (all, not-started, in-progress, review, completed); empty means all"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type addTaskInput struct {
	Name        string `json:"name" jsonschema:"short task name"`
	Description string `json:"description" jsonschema:"what needs to be done"`
	DueDate     string `json:"due_date" jsonschema:"due date as YYYY-MM-DD"`
	AssignedTo  string `json:"assigned_to" jsonschema:"who the task is assigned to"`
	Status      string `json:"status,omitempty" jsonschema:"initial status (not-started, in-progress, review, completed); may be empty"`
}

type editTaskInput struct {
	ID          int64  `json:"id" jsonschema:"the numeric task id"`
	Name        string `json:"name" jsonschema:"short task name"`
	Description string `json:"description" jsonschema:"what needs to be done"`
	DueDate     string `json:"due_date" jsonschema:"due date as YYYY-MM-DD"`
	AssignedTo  string `json:"assigned_to" jsonschema:"who the task is assigned to"`
	Status      string `json:"status,omitempty" jsonschema:"status (not-started, in-progress, review, completed); may be empty"`
}

type messageOutput struct {
	Message string `json:"message"`
}

type getMetricsInput struct {
	Since  string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
	TaskID int64  `json:"task_id,omitempty" jsonschema:"only count events for this task id"`
}

type metricsOutput struct {
	TasksAdded    int            `json:"tasks_added"`
	TasksEdited   int            `json:"tasks_edited"`
	TasksDeleted  int            `json:"tasks_deleted"`
	TasksAdvanced int            `json:"tasks_advanced"`
	TasksByStatus map[string]int `json:"tasks_by_status"`
	EventCount    int            `json:"event_count"`
	OldestEvent   string         `json:"oldest_event,omitempty"`
	NewestEvent   string         `json:"newest_event,omitempty"`
}

type getAlertsInput struct{}

type alertOutput struct {
	ID          string `json:"id"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	TaskID      int64  `json:"task_id"`
	TriggeredAt string `json:"triggered_at"`
}

type getAlertsOutput struct {
	Alerts []alertOutput `json:"alerts"`
	Count  int           `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks in insertion order with an optional status filter.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get a single task by id.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Create a task. name, description, due_date and assigned_to are required.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "edit_task",
		Description: "Replace every field of an existing task.",
	}, s.handleEditTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by id.",
	}, s.handleDeleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "advance_task_status",
		Description: "Move a task to its next status: not-started, in-progress, review, completed, then back to not-started.",
	}, s.handleAdvanceTaskStatus)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get counts of task mutations from the event log, optionally for a single task.",
	}, s.handleGetMetrics)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_alerts",
		Description: "List overdue tasks, tasks due soon, and tasks without a status.",
	}, s.handleGetAlerts)
}

// --- Tool handlers ---

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	status, err := models.ParseFilter(input.Status)
	if err != nil {
		return errorResult(err.Error()), listTasksOutput{}, nil
	}

	out := listTasksOutput{Tasks: []taskOutput{}}
	for t := range s.store.Filter(status) {
		out.Tasks = append(out.Tasks, taskToOutput(t))
	}
	out.Count = len(out.Tasks)
	return nil, out, nil
}

func (s *Server) handleGetTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, ok := s.store.Get(input.ID)
	if !ok {
		return errorResult(fmt.Sprintf("task %d not found", input.ID)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if err := core.ValidateDueDate(input.DueDate); err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}

	task, err := s.store.Add(input.Name, input.Description, input.DueDate, input.AssignedTo, input.Status)
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			return errorResult(verr.Error()), taskOutput{}, nil
		}
		return errorResult(fmt.Sprintf("adding task: %s", err)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleEditTask(_ context.Context, _ *gomcp.CallToolRequest, input editTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	status, err := models.ParseStatus(input.Status)
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}
	if err := core.ValidateDueDate(input.DueDate); err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}

	updated := models.Task{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		DueDate:     input.DueDate,
		AssignedTo:  input.AssignedTo,
		Status:      status,
	}
	found, err := s.store.Edit(updated)
	if err != nil {
		return errorResult(fmt.Sprintf("editing task %d: %s", input.ID, err)), taskOutput{}, nil
	}
	if !found {
		return errorResult(fmt.Sprintf("task %d not found", input.ID)), taskOutput{}, nil
	}
	return nil, taskToOutput(updated), nil
}

func (s *Server) handleDeleteTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, messageOutput, error) {
	removed, err := s.store.Delete(input.ID)
	if err != nil {
		return errorResult(fmt.Sprintf("deleting task %d: %s", input.ID, err)), messageOutput{}, nil
	}
	if !removed {
		return errorResult(fmt.Sprintf("task %d not found", input.ID)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %d deleted", input.ID)}, nil
}

func (s *Server) handleAdvanceTaskStatus(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, ok, err := s.store.AdvanceStatus(input.ID)
	if err != nil {
		return errorResult(fmt.Sprintf("advancing task %d: %s", input.ID, err)), taskOutput{}, nil
	}
	if !ok {
		return errorResult(fmt.Sprintf("task %d not found", input.ID)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available (observability may be disabled)"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := observability.ParseSince(sinceStr, s.now())
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	metrics, err := s.metricsCalc.Calculate(observability.MetricsQuery{Since: sinceTime, TaskID: input.TaskID})
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := metricsOutput{
		TasksAdded:    metrics.TasksAdded,
		TasksEdited:   metrics.TasksEdited,
		TasksDeleted:  metrics.TasksDeleted,
		TasksAdvanced: metrics.TasksAdvanced,
		TasksByStatus: metrics.TasksByStatus,
		EventCount:    metrics.EventCount,
	}
	if metrics.OldestEvent != nil {
		out.OldestEvent = metrics.OldestEvent.Format(time.RFC3339)
	}
	if metrics.NewestEvent != nil {
		out.NewestEvent = metrics.NewestEvent.Format(time.RFC3339)
	}

	return nil, out, nil
}

func (s *Server) handleGetAlerts(_ context.Context, _ *gomcp.CallToolRequest, _ getAlertsInput) (*gomcp.CallToolResult, getAlertsOutput, error) {
	if s.alertEngine == nil {
		return errorResult("alert engine not available"), getAlertsOutput{Alerts: []alertOutput{}}, nil
	}

	alerts := s.alertEngine.Evaluate(s.store.Tasks(), s.now())
	out := getAlertsOutput{
		Alerts: make([]alertOutput, len(alerts)),
		Count:  len(alerts),
	}
	for i, a := range alerts {
		out.Alerts[i] = alertOutput{
			ID:          a.ID,
			Condition:   a.Condition,
			Severity:    string(a.Severity),
			Message:     a.Message,
			TaskID:      a.TaskID,
			TriggeredAt: a.TriggeredAt.Format(time.RFC3339),
		}
	}

	return nil, out, nil
}

// --- Helpers ---

func taskToOutput(t models.Task) taskOutput {
	return taskOutput{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		DueDate:     t.DueDate,
		AssignedTo:  t.AssignedTo,
		Status:      string(t.Status),
		NextAction:  t.Status.ActionLabel(),
	}
}

func emptyMetricsOutput() metricsOutput {
	return metricsOutput{TasksByStatus: make(map[string]int)}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
