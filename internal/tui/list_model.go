package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/todoweb/internal/models"
	"github.com/balkashynov/todoweb/internal/sortmode"
)

// ListStore is what the list screen needs from the task store
type ListStore interface {
	ListTasks(ctx context.Context, mode sortmode.Mode) ([]models.Task, error)
	MarkTaskDone(ctx context.Context, id uint) (*models.Task, error)
	DeleteTask(ctx context.Context, id uint) error
}

// ListModel represents the TUI model for listing tasks
type ListModel struct {
	ctx   context.Context
	store ListStore
	sort  *sortmode.State

	width  int
	height int

	// Task data
	tasks        []models.Task
	selectedTask int // index in tasks slice

	// UI state
	confirmDelete bool
	status        string
	err           error

	// Pagination
	currentPage  int
	tasksPerPage int
}

// NewListModel creates a new list TUI model and loads the first page of tasks
func NewListModel(ctx context.Context, store ListStore, sort *sortmode.State) ListModel {
	m := ListModel{
		ctx:          ctx,
		store:        store,
		sort:         sort,
		tasksPerPage: 10,
	}
	return m.reload()
}

// Init initializes the model
func (m ListModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Height - header(4) - pagination(2) - status(2) - help(1) - borders(2)
		availableHeight := m.height - 11
		if availableHeight < 3 {
			availableHeight = 3
		}
		m.tasksPerPage = availableHeight
		m = m.clampPage()

		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete {
			return m.handleConfirmKeys(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			return m.moveSelection(-1), nil

		case "down", "j":
			return m.moveSelection(1), nil

		case "left", "h":
			return m.changePage(-1), nil

		case "right", "l":
			return m.changePage(1), nil

		case "d", "enter":
			return m.markSelectedDone(), nil

		case "x", "delete":
			if task, ok := m.selected(); ok {
				m.confirmDelete = true
				m.status = fmt.Sprintf("Delete #%d %q? y/n", task.ID, task.Action)
			}
			return m, nil

		case "u":
			m.sort.Set(sortmode.Up)
			return m.reload(), nil

		case "n":
			m.sort.Set(sortmode.Down)
			return m.reload(), nil

		case "r":
			return m.reload(), nil
		}
	}

	return m, nil
}

// handleConfirmKeys answers the delete confirmation prompt
func (m ListModel) handleConfirmKeys(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmDelete = false
		return m.deleteSelected(), nil
	case "ctrl+c":
		return m, tea.Quit
	default:
		m.confirmDelete = false
		m.status = "Delete cancelled"
		return m, nil
	}
}

func (m ListModel) selected() (models.Task, bool) {
	if m.selectedTask < 0 || m.selectedTask >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.selectedTask], true
}

func (m ListModel) markSelectedDone() ListModel {
	task, ok := m.selected()
	if !ok {
		return m
	}
	if _, err := m.store.MarkTaskDone(m.ctx, task.ID); err != nil {
		m.err = err
		return m
	}
	m.status = fmt.Sprintf("✓ #%d done", task.ID)
	return m.reload()
}

func (m ListModel) deleteSelected() ListModel {
	task, ok := m.selected()
	if !ok {
		return m
	}
	if err := m.store.DeleteTask(m.ctx, task.ID); err != nil {
		m.err = err
		return m
	}
	m.status = fmt.Sprintf("Deleted #%d", task.ID)
	return m.reload()
}

// reload fetches tasks in the current sort mode, keeping the selection in range
func (m ListModel) reload() ListModel {
	tasks, err := m.store.ListTasks(m.ctx, m.sort.Current())
	if err != nil {
		m.err = err
		return m
	}
	m.err = nil
	m.tasks = tasks
	if m.selectedTask >= len(m.tasks) {
		m.selectedTask = len(m.tasks) - 1
	}
	if m.selectedTask < 0 {
		m.selectedTask = 0
	}
	return m.clampPage()
}

// moveSelection moves the selection and follows it across pages
func (m ListModel) moveSelection(delta int) ListModel {
	next := m.selectedTask + delta
	if next < 0 || next >= len(m.tasks) {
		return m
	}
	m.selectedTask = next
	return m.clampPage()
}

// changePage moves to another page and keeps the selection on it
func (m ListModel) changePage(delta int) ListModel {
	page := m.currentPage + delta
	if page < 0 || page >= m.pageCount() {
		return m
	}
	m.currentPage = page
	m.selectedTask = page * m.tasksPerPage
	return m
}

// clampPage makes the current page the one holding the selection
func (m ListModel) clampPage() ListModel {
	if m.tasksPerPage > 0 {
		m.currentPage = m.selectedTask / m.tasksPerPage
	}
	return m
}

func (m ListModel) pageCount() int {
	if m.tasksPerPage <= 0 || len(m.tasks) == 0 {
		return 1
	}
	return (len(m.tasks) + m.tasksPerPage - 1) / m.tasksPerPage
}

// View renders the TUI
func (m ListModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTaskTable(width-2),
		m.renderStatusBar(width),
		m.renderHelpBar(width),
	)
}

// renderTaskTable renders the bordered task table
func (m ListModel) renderTaskTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render(fmt.Sprintf("Tasks · %s", m.sort.Current())))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No tasks yet. Use 'todoweb add' to create one."))
		return tableBorder(width).Render(b.String())
	}

	idWidth := 5
	dateWidth := 12
	flagWidth := 6
	actionWidth := width - idWidth - dateWidth - flagWidth - 8
	if actionWidth < 20 {
		actionWidth = 20
	}

	columnHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain))
	b.WriteString(columnHeaderStyle.Render(fmt.Sprintf("  %-*s %-*s %-*s %s",
		idWidth, "ID",
		actionWidth, "ACTION",
		dateWidth, "DATE",
		"FLAGS")))
	b.WriteString("\n")

	start := m.currentPage * m.tasksPerPage
	end := min(start+m.tasksPerPage, len(m.tasks))

	for i := start; i < end; i++ {
		task := m.tasks[i]

		row := fmt.Sprintf("%-*s %-*s %-*s %s",
			idWidth, fmt.Sprintf("#%d", task.ID),
			actionWidth, truncate(task.Action, actionWidth),
			dateWidth, truncate(task.Date, dateWidth),
			taskFlags(task))

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		if task.Done {
			style = style.Foreground(lipgloss.Color(ColorDisabledText)).Strikethrough(true)
		} else if task.Priority {
			style = style.Foreground(lipgloss.Color(ColorPriority))
		}

		cursor := "  "
		if i == m.selectedTask {
			cursor = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render("▶ ")
			style = style.Bold(true)
		}

		b.WriteString(cursor + style.Render(row))
		b.WriteString("\n")
	}

	// Pagination info
	if pages := m.pageCount(); pages > 1 {
		pageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			MarginTop(1)
		b.WriteString(pageStyle.Render(fmt.Sprintf("Page %d/%d (%d tasks)", m.currentPage+1, pages, len(m.tasks))))
	}

	return tableBorder(width).Render(b.String())
}

func tableBorder(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Width(width)
}

// taskFlags renders the done and priority markers
func taskFlags(task models.Task) string {
	flags := ""
	if task.Done {
		flags += "✓"
	}
	if task.Priority {
		flags += "!"
	}
	if flags == "" {
		return "-"
	}
	return flags
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// renderStatusBar shows the last action result or error
func (m ListModel) renderStatusBar(width int) string {
	style := lipgloss.NewStyle().Width(width).Padding(0, 1)
	switch {
	case m.err != nil:
		return style.Foreground(lipgloss.Color(ColorError)).Render("Error: " + m.err.Error())
	case m.status != "":
		return style.Foreground(lipgloss.Color(ColorSuccess)).Render(m.status)
	}
	return ""
}

// renderHelpBar renders the help bar with hotkey hints
func (m ListModel) renderHelpBar(width int) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width)

	return helpStyle.Render("↑/↓ nav · ←/→ page · d done · x delete · u/n sort up/down · r reload · q quit")
}
