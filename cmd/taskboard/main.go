package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tgienger/taskboard/internal/config"
	"github.com/tgienger/taskboard/internal/db"
	"github.com/tgienger/taskboard/internal/logging"
	"github.com/tgienger/taskboard/internal/store"
	"github.com/tgienger/taskboard/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Terminal task dashboard",
	Long: `taskboard is a single-screen task dashboard for the terminal.

Run without arguments to open the dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			configPath = config.ResolveConfigPath()
		}
		var err error
		cfg, err = config.LoadOrCreate(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if dbPath != "" {
			cfg.DBPath = dbPath
		}

		logger, err = logging.New(cfg.LogPath, cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "taskboard %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/taskboard/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides db_path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(versionCmd, listCmd, statsCmd, cleanupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the database and wraps it in a task store
func openStore() (*db.DB, *store.Store, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return database, store.New(database, store.WithLogger(logger)), nil
}

func runDashboard() error {
	database, tasks, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	if len(cfg.CleanupTitles) > 0 {
		n, err := tasks.RemoveByTitles(cfg.CleanupTitles...)
		if err != nil {
			return fmt.Errorf("startup cleanup: %w", err)
		}
		logger.Info("startup cleanup", zap.Int("removed", n))
	}

	app := ui.NewApp(tasks, database, cfg, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())

	watcher, err := config.Watch(configPath,
		func(c config.Config) { p.Send(ui.ConfigReloaded{Config: c}) },
		func(err error) { logger.Warn("config watch", zap.Error(err)) },
	)
	if err != nil {
		// The dashboard still works without live reload.
		logger.Warn("config watch disabled", zap.Error(err))
	} else {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
