package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/todoweb/internal/db"
	"github.com/balkashynov/todoweb/internal/models"
	"github.com/balkashynov/todoweb/internal/parser"
)

// Step represents the current step in the wizard
type Step int

const (
	StepAction Step = iota
	StepDate
	StepPriority
	StepSave
)

var stepLabels = []string{"Action", "Date", "Priority", "Save"}

// CreateStore is what the add wizard needs from the task store
type CreateStore interface {
	CreateTask(ctx context.Context, req db.CreateTaskRequest) (*models.Task, error)
}

// AddTaskModel represents the TUI model for adding tasks
type AddTaskModel struct {
	ctx   context.Context
	store CreateStore
	now   func() time.Time

	currentStep Step
	inputs      []textinput.Model
	width       int

	// Task data
	priority bool

	// State
	err           error
	completed     bool
	cancelled     bool
	validationErr string
	created       *models.Task
}

// NewAddTaskModel creates a new add task TUI model
func NewAddTaskModel(ctx context.Context, store CreateStore, prefilled map[string]string) AddTaskModel {
	inputs := make([]textinput.Model, 2)

	// Apply color theme to all inputs
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	// Action input
	inputs[StepAction].Placeholder = "What needs doing? (required)"
	inputs[StepAction].CharLimit = 250
	inputs[StepAction].Focus()

	// Date input
	inputs[StepDate].Placeholder = "YYYY-MM-DD, today, tomorrow, 3 days, 2 weeks (Enter to skip)"
	inputs[StepDate].CharLimit = 500

	m := AddTaskModel{
		ctx:         ctx,
		store:       store,
		now:         time.Now,
		currentStep: StepAction,
		inputs:      inputs,
	}

	// Set pre-filled values
	if action, ok := prefilled["action"]; ok {
		m.inputs[StepAction].SetValue(action)
	}
	if date, ok := prefilled["date"]; ok {
		m.inputs[StepDate].SetValue(date)
	}
	if prefilled["priority"] == "true" {
		m.priority = true
	}

	return m
}

// Init initializes the model
func (m AddTaskModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AddTaskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		inputWidth := m.width - 10
		if inputWidth < 30 {
			inputWidth = 30
		}
		if inputWidth > 80 {
			inputWidth = 80
		}
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter", "tab", "down":
			return m.nextStep()

		case "shift+tab", "up":
			return m.prevStep()
		}

		if m.currentStep == StepPriority {
			switch msg.String() {
			case " ", "y", "Y", "n", "N", "left", "right":
				m.priority = togglePriority(m.priority, msg.String())
			}
			return m, nil
		}
	}

	// Update the current text input
	var cmd tea.Cmd
	if m.currentStep < StepPriority {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
		m.validationErr = ""
	}

	return m, cmd
}

func togglePriority(current bool, key string) bool {
	switch key {
	case "y", "Y":
		return true
	case "n", "N":
		return false
	default:
		return !current
	}
}

// nextStep validates the current step and advances, saving after the last one
func (m AddTaskModel) nextStep() (tea.Model, tea.Cmd) {
	if m.currentStep == StepAction && m.action() == "" {
		m.validationErr = "Action is required"
		return m, nil
	}

	if m.currentStep == StepSave {
		return m.save()
	}

	m.currentStep++
	return m.focusCurrent(), nil
}

func (m AddTaskModel) prevStep() (tea.Model, tea.Cmd) {
	if m.currentStep > StepAction {
		m.currentStep--
	}
	return m.focusCurrent(), nil
}

func (m AddTaskModel) focusCurrent() AddTaskModel {
	for i := range m.inputs {
		if Step(i) == m.currentStep {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m AddTaskModel) action() string {
	return strings.TrimSpace(m.inputs[StepAction].Value())
}

func (m AddTaskModel) date() string {
	return parser.ExpandDate(m.inputs[StepDate].Value(), m.now())
}

// save creates the task and quits
func (m AddTaskModel) save() (tea.Model, tea.Cmd) {
	task, err := m.store.CreateTask(m.ctx, db.CreateTaskRequest{
		Action:   m.action(),
		Date:     m.date(),
		Priority: m.priority,
	})
	if err != nil {
		m.err = err
		return m, tea.Quit
	}

	m.created = task
	m.completed = true
	return m, tea.Quit
}

// View renders the TUI
func (m AddTaskModel) View() string {
	if m.cancelled || m.completed || m.err != nil {
		return "" // exit message is printed after the program ends
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(titleStyle.Render("Create New Task"))
	b.WriteString("\n\n")

	// Step indicator
	for i, label := range stepLabels {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		marker := "  "
		if Step(i) == m.currentStep {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
			marker = "▶ "
		} else if Step(i) < m.currentStep {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
			marker = "✓ "
		}
		b.WriteString(style.Render(marker + label))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.currentStep {
	case StepAction, StepDate:
		b.WriteString(m.inputs[m.currentStep].View())
	case StepPriority:
		b.WriteString(fmt.Sprintf("Priority: %s  (space/y/n to change)", yesNo(m.priority)))
	case StepSave:
		b.WriteString(m.renderPreview())
		b.WriteString("\n\nPress Enter to save.")
	}
	b.WriteString("\n")

	if m.validationErr != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		b.WriteString("\n" + errStyle.Render(m.validationErr) + "\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true)
	b.WriteString("\n" + helpStyle.Render("enter next · shift+tab back · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(b.String())
}

// renderPreview summarises the task about to be created
func (m AddTaskModel) renderPreview() string {
	date := m.date()
	if date == "" {
		date = "-"
	}
	return fmt.Sprintf("Action:   %s\nDate:     %s\nPriority: %s", m.action(), date, yesNo(m.priority))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
