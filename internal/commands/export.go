package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/todoweb/internal/db"
	"github.com/balkashynov/todoweb/internal/export"
	"github.com/balkashynov/todoweb/internal/models"
	"github.com/balkashynov/todoweb/internal/sortmode"
	"github.com/balkashynov/todoweb/internal/web"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Append all tasks to a semicolon-separated file",
	Long: `Append all tasks, newest date first, to file as semicolon-separated values.
Each export writes its own header line. Nothing is written when there are no tasks.`,
	Args: cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		path := args[0]

		tasks, err := store.GetTasksByDate(cmd.Context(), sortmode.Descending)
		if err != nil {
			return err
		}

		content, err := export.Export(models.Records(tasks), web.ExcludedExportFields...)
		if errors.Is(err, export.ErrEmptyInput) {
			fmt.Println("No tasks to export.")
			return nil
		}
		if err != nil {
			return err
		}

		if err := export.AppendFile(path, content); err != nil {
			return err
		}

		logger.Debug("tasks exported", "file", path, "count", len(tasks))
		fmt.Printf("Exported %d tasks to %s\n", len(tasks), path)
		return nil
	}),
}
