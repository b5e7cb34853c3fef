package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/todoweb/internal/db"
	"github.com/balkashynov/todoweb/internal/parser"
	"github.com/balkashynov/todoweb/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [action]",
	Short: "Add a new task",
	Long: `Add a new task.

Modes:
  Interactive: todoweb add -i (or just 'todoweb add' with no arguments)
  Quick: todoweb add "Buy milk" --date 2024-03-01
  Smart parsing: todoweb add "Renew passport ! due:2 weeks"

Smart parsing syntax:
  !, +high, +urgent   - Mark as priority
  due:tomorrow        - Date (YYYY-MM-DD, today, tomorrow, N days, N weeks)`,
	Args: cobra.ArbitraryArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		interactive, _ := cmd.Flags().GetBool("interactive")

		// If no args, go interactive
		if len(args) == 0 || interactive {
			return runInteractiveAdd(cmd, store, parser.ParsedTask{Action: strings.Join(args, " ")})
		}

		parsed := parser.ParseAction(strings.Join(args, " "), time.Now())
		if len(parsed.Errors) > 0 {
			// Fall back to interactive with pre-filled data
			fmt.Printf("⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			fmt.Println("Opening interactive mode for confirmation...")
			return runInteractiveAdd(cmd, store, parsed)
		}

		return runDirectAdd(cmd, store, parsed)
	}),
}

// runInteractiveAdd starts the wizard, pre-filled from parsed input and flags
func runInteractiveAdd(cmd *cobra.Command, store *db.Store, parsed parser.ParsedTask) error {
	prefilled := make(map[string]string)
	if parsed.Action != "" {
		prefilled["action"] = parsed.Action
	}
	if parsed.Date != "" {
		prefilled["date"] = parsed.Date
	}
	if parsed.Priority {
		prefilled["priority"] = "true"
	}

	// Override with any explicit flags
	if date, _ := cmd.Flags().GetString("date"); date != "" {
		prefilled["date"] = date
	}
	if priority, _ := cmd.Flags().GetBool("priority"); priority {
		prefilled["priority"] = "true"
	}

	return tui.RunAddTaskTUI(cmd.Context(), store, prefilled)
}

// runDirectAdd creates the task without the TUI
func runDirectAdd(cmd *cobra.Command, store *db.Store, parsed parser.ParsedTask) error {
	req := db.CreateTaskRequest{
		Action:   parsed.Action,
		Date:     parsed.Date,
		Priority: parsed.Priority,
	}

	// Explicit flags take precedence
	if date, _ := cmd.Flags().GetString("date"); date != "" {
		req.Date = parser.ExpandDate(date, time.Now())
	}
	if priority, _ := cmd.Flags().GetBool("priority"); priority {
		req.Priority = true
	}

	if strings.TrimSpace(req.Action) == "" {
		return errors.New("action is required")
	}

	task, err := store.CreateTask(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	fmt.Printf("Created task #%d: %s\n", task.ID, task.Action)
	if task.Date != "" {
		fmt.Printf("  Date: %s\n", task.Date)
	}
	if task.Priority {
		fmt.Println("  Priority: yes")
	}
	return nil
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	addCmd.Flags().StringP("date", "d", "", "Date: YYYY-MM-DD, today, tomorrow, N days, N weeks")
	addCmd.Flags().BoolP("priority", "p", false, "Mark the task as priority")
}
