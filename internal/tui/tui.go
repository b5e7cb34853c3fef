package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/todoweb/internal/sortmode"
)

// RunListTUI starts the interactive task list
func RunListTUI(ctx context.Context, store ListStore, sort *sortmode.State) error {
	model := NewListModel(ctx, store, sort)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// RunAddTaskTUI starts the interactive add task TUI
func RunAddTaskTUI(ctx context.Context, store CreateStore, prefilled map[string]string) error {
	model := NewAddTaskModel(ctx, store, prefilled)

	p := tea.NewProgram(model, tea.WithContext(ctx))
	finalModel, err := p.Run()

	// Handle exit messages after TUI closes
	if err != nil {
		return err
	}

	if m, ok := finalModel.(AddTaskModel); ok {
		if m.cancelled {
			fmt.Println("❌ Task creation cancelled.")
		} else if m.completed && m.created != nil {
			fmt.Printf("✅ New task \"%s\" added - ID: %d\n", m.created.Action, m.created.ID)
		} else if m.err != nil {
			return m.err
		}
	}

	return nil
}
