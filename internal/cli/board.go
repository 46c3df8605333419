package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo/internal/core"
	"github.com/valter-silva-au/todo/pkg/models"
)

type boardModel struct {
	store       core.TaskStore
	now         func() time.Time
	dueSoonDays int

	filters   []string
	filterIdx int
	tasks     []models.Task
	cursor    int

	width  int
	height int

	notice string
	err    error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	activeFilterStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(lipgloss.Color("62"))

	selectedStyle = lipgloss.NewStyle().Bold(true)
	dueSoonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	statusNotStarted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	statusReview     = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	statusCompleted  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	statusUnset      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newBoardModel(store core.TaskStore) boardModel {
	m := boardModel{
		store:       store,
		now:         now,
		dueSoonDays: DueSoonDays,
		filters:     models.FilterSelections(),
	}
	m.refresh()
	return m
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.notice = ""
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "enter", " ", "space":
			if t, ok := m.selected(); ok {
				updated, found, err := m.store.AdvanceStatus(t.ID)
				m.err = err
				if found {
					m.notice = fmt.Sprintf("%s is now %s", updated.Name, updated.Status.Label())
				}
				m.refresh()
			}
		case "d":
			if t, ok := m.selected(); ok {
				found, err := m.store.Delete(t.ID)
				m.err = err
				if found {
					m.notice = fmt.Sprintf("deleted %s", t.Name)
				}
				m.refresh()
			}
		case "f":
			m.filterIdx = (m.filterIdx + 1) % len(m.filters)
			m.cursor = 0
			m.refresh()
		case "r":
			m.store.Load()
			m.err = nil
			m.notice = "reloaded"
			m.refresh()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// refresh re-reads the filtered tasks from the store and clamps the cursor.
func (m *boardModel) refresh() {
	status, _ := models.ParseFilter(m.filters[m.filterIdx])
	var tasks []models.Task
	for t := range m.store.Filter(status) {
		tasks = append(tasks, t)
	}
	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m boardModel) selected() (models.Task, bool) {
	if len(m.tasks) == 0 {
		return models.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m boardModel) dueSoon(t models.Task) bool {
	return t.Status != models.StatusCompleted && t.DueSoon(m.now(), m.dueSoonDays)
}

func (m boardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(" Task Management App "))
	b.WriteString("\n\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")

	width := m.width - 4
	if width < 40 {
		width = 40
	}
	b.WriteString(panelStyle.Width(width).Render(m.renderTasks()))
	b.WriteString("\n")

	if t, ok := m.selected(); ok {
		b.WriteString(panelStyle.Width(width).Render(m.renderDetails(t)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(helpStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/k ↓/j: move | enter: advance | d: delete | f: filter | r: reload | q: quit"))
	return b.String()
}

func (m boardModel) renderFilters() string {
	parts := make([]string, len(m.filters))
	for i, f := range m.filters {
		label := "All"
		if st, err := models.ParseFilter(f); err == nil && st != models.StatusUnset {
			label = st.Label()
		}
		if i == m.filterIdx {
			parts[i] = activeFilterStyle.Render(label)
		} else {
			parts[i] = helpStyle.Render(label)
		}
	}
	return "Filter: " + strings.Join(parts, "  ")
}

func (m boardModel) renderTasks() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Tasks (%d)", len(m.tasks))))
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString("  No tasks found.")
		return b.String()
	}

	for i, t := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		marker := " "
		if m.dueSoon(t) {
			marker = dueSoonStyle.Render("!")
		}
		name := fmt.Sprintf("%-28s", truncate(t.Name, 28))
		if i == m.cursor {
			name = selectedStyle.Render(name)
		}
		line := fmt.Sprintf("%s%s %s  %-10s  %s",
			cursor, marker, name, t.FormattedDueDate(), styleForStatus(t.Status).Render(t.Status.Label()))
		b.WriteString(line)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m boardModel) renderDetails(t models.Task) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(t.Name))
	b.WriteString("\n")
	b.WriteString(t.Description)
	b.WriteString("\n\n")
	due := "Due: " + t.FormattedDueDate()
	if m.dueSoon(t) {
		due = dueSoonStyle.Render(due + " (due soon)")
	}
	b.WriteString(due)
	b.WriteString("\n")
	b.WriteString("Assigned to: " + t.AssignedTo)
	b.WriteString("\n")
	b.WriteString("Status: " + styleForStatus(t.Status).Render(t.Status.Label()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: " + t.Status.ActionLabel()))
	return b.String()
}

func styleForStatus(status models.TaskStatus) lipgloss.Style {
	switch status {
	case models.StatusNotStarted:
		return statusNotStarted
	case models.StatusInProgress:
		return statusInProgress
	case models.StatusReview:
		return statusReview
	case models.StatusCompleted:
		return statusCompleted
	default:
		return statusUnset
	}
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive task board",
	Long: `Launch an interactive terminal board listing tasks.

Move with the arrow keys or j/k, advance the selected task's status with
enter or space, delete it with d, cycle the status filter with f, reload
from disk with r, and quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}
		p := tea.NewProgram(newBoardModel(TaskStore), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
