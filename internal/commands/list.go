package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/todoweb/internal/db"
	"github.com/balkashynov/todoweb/internal/models"
	"github.com/balkashynov/todoweb/internal/sortmode"
	"github.com/balkashynov/todoweb/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long: `List tasks in an interactive view, or as plain text with --no-ui.

--sort up lists the newest dates first, --sort down the oldest first.`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		state := &sortmode.State{}
		if order, _ := cmd.Flags().GetString("sort"); order != "" {
			if !state.SetLabel(order) {
				return fmt.Errorf("unknown sort order %q (use up or down)", order)
			}
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		noUI, _ := cmd.Flags().GetBool("no-ui")

		if !jsonOutput && !noUI {
			return tui.RunListTUI(cmd.Context(), store, state)
		}

		tasks, err := store.ListTasks(cmd.Context(), state.Current())
		if err != nil {
			return fmt.Errorf("fetching tasks: %w", err)
		}

		if jsonOutput {
			return renderListJSON(tasks)
		}
		renderListTable(tasks)
		return nil
	}),
}

// renderListJSON outputs tasks as a JSON array
func renderListJSON(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	jsonBytes, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

// renderListTable outputs tasks as a formatted table
func renderListTable(tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found. Use 'todoweb add \"task description\"' to create your first task.")
		return
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tui.ColorAccentMain))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorDisabledText))
	priorityStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorPriority))

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-5s %-40s %-12s %-4s %s", "ID", "ACTION", "DATE", "DONE", "PRIO")))
	fmt.Println(strings.Repeat("-", 70))

	for _, task := range tasks {
		action := task.Action
		if len([]rune(action)) > 38 {
			action = string([]rune(action)[:35]) + "..."
		}

		row := fmt.Sprintf("%-5d %-40s %-12s %-4s %s",
			task.ID,
			action,
			task.Date,
			mark(task.Done),
			mark(task.Priority))

		switch {
		case task.Done:
			row = doneStyle.Render(row)
		case task.Priority:
			row = priorityStyle.Render(row)
		}
		fmt.Println(row)
	}
}

func mark(b bool) string {
	if b {
		return "x"
	}
	return ""
}

func init() {
	listCmd.Flags().StringP("sort", "s", "", "Sort by date: up (newest first) or down (oldest first)")
	listCmd.Flags().Bool("no-ui", false, "Simple text output")
	listCmd.Flags().Bool("json", false, "JSON output")
}
