package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/balkashynov/todoweb/internal/config"
	"github.com/balkashynov/todoweb/internal/db"
	"github.com/balkashynov/todoweb/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg    *config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "todoweb",
	Short: "A small to-do list served over the web",
	Long: `todoweb keeps a list of dated tasks in a local SQLite file.
Serve it as a web page, or add, list, complete and export tasks from the terminal.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// loadConfig resolves configuration and builds the logger before any command runs
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Flags take precedence over file and environment
	if cmd.Flags().Changed("db") {
		c.SetDatabase(dbPath)
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel = logLevel
	}

	l, err := logging.New(os.Stderr, c.LogLevel)
	if err != nil {
		return err
	}

	cfg = c
	logger = l
	return nil
}

// openStore opens the task store named by the configuration
func openStore() (*db.Store, error) {
	var opts []db.Option
	if logger.GetLevel() <= log.DebugLevel {
		opts = append(opts, db.WithSQLLogging(logger.WithPrefix("sql")))
	}

	store, err := db.Open(cfg.Database, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "path", cfg.Database)
	return store, nil
}

// withStore wraps a command function to open the store first and close it afterwards
func withStore(fn func(*cobra.Command, []string, *db.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(cmd, args, store)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "todoweb %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.todoweb/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands here
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.SetHelpCommand(helpCmd)
}
