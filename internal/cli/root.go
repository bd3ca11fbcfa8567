// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradelog/internal/config"
	"tradelog/internal/journal"
	"tradelog/internal/logging"
	"tradelog/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   store.DataStore
	Journal *journal.Store
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	dataStore, err := store.NewSQLiteStore(cfg.DatabasePath())
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, analysis commands will be unavailable")
	} else {
		app.Store = dataStore
		app.Journal = journal.New(dataStore)
		logger.Debug().Str("path", cfg.DatabasePath()).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "tradelog",
		Short: "tradelog - CSV trading journal and performance analytics",
		Long: `tradelog is a local-first trading journal.

Import a CSV of closed trades, then analyze PnL, equity, drawdowns and
per-symbol performance, and attach notes to individual trades.

Use 'tradelog help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/tradelog)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addImportCommand(rootCmd, app)
	addStatsCommands(rootCmd, app)
	addLeaderboardCommands(rootCmd, app)
	addExportCommand(rootCmd, app)
	addJournalCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("tradelog v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Data")
			output.Printf("  Directory:  %s\n", app.Config.Data.Dir)
			output.Printf("  Database:   %s\n", app.Config.DatabasePath())
			output.Println()
			output.Bold("UI")
			output.Printf("  Color:       %v\n", app.Config.UI.ColorEnabled)
			output.Printf("  Date format: %s\n", app.Config.UI.DateFormat)
			output.Println()
			output.Bold("Logging")
			output.Printf("  Level:   %s\n", app.Config.Log.Level)
			output.Printf("  Console: %v\n", app.Config.Log.Console)
			output.Printf("  File:    %v\n", app.Config.Log.File)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	return cmd
}
