package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for todoweb",
	Long:  `Display detailed help for all todoweb commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
todoweb - a to-do list for the browser and the terminal

COMMANDS:

  serve                   Start the web interface
    --addr                Listen address (default :5000)

    Pages:
      /             Task list
      /add          New task form
      /sort/up      Newest dates first
      /sort/down    Oldest dates first
      /save         Append all tasks to a file on the server

  add <action>            Create a new task with smart parsing
    -d, --date            Date (YYYY-MM-DD, today, tomorrow, 3 days, 2 weeks)
    -p, --priority        Mark as priority
    -i, --interactive     Open the interactive wizard

    Smart syntax:
      !, +high      Mark as priority
      due:tomorrow  Set the date

    Example:
      todoweb add "Renew passport ! due:2 weeks"

  ls                      List and manage tasks with interactive UI
    -s, --sort            up (newest first) or down (oldest first)
    --no-ui               Simple text output
    --json                JSON output

    Quick actions:
      ↑/↓           Navigate tasks
      d             Mark done
      x             Delete (asks for confirmation)
      u / n         Sort up / down
      r             Reload
      esc/q         Quit

  done <id>               Mark task as completed
  delete <id>             Delete a task (alias: rm)
  export <file>           Append all tasks to a semicolon-separated file
  version                 Show version information
  help                    Show this help

GLOBAL FLAGS:
  --config                Config file (default ~/.todoweb/config.toml)
  --db                    SQLite database file (default ~/.todoweb/todo.db)
  --log-level             debug, info, warn or error

ENVIRONMENT:
  TODOWEB_DATABASE, TODOWEB_ADDR, TODOWEB_LOG_LEVEL

`)
}
