package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/todoweb/internal/db"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		taskID, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		task, err := store.MarkTaskDone(cmd.Context(), taskID)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Marked task #%d as done: %s\n", task.ID, task.Action)
		return nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		taskID, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		if err := store.DeleteTask(cmd.Context(), taskID); err != nil {
			return err
		}

		fmt.Printf("🗑  Deleted task #%d\n", taskID)
		return nil
	}),
}

func parseTaskID(arg string) (uint, error) {
	taskID, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid task ID '%s'", arg)
	}
	return uint(taskID), nil
}
