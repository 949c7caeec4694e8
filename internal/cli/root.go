package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhutch/taskpilot/internal/audit"
	"github.com/mhutch/taskpilot/internal/config"
	"github.com/mhutch/taskpilot/internal/engine"
	"github.com/mhutch/taskpilot/internal/store"
	"github.com/mhutch/taskpilot/internal/ui"
)

var (
	// Global flags
	configPath  string
	dataDirFlag string
	userID      string

	// Resolved values
	cfg             *config.Config
	resolvedDataDir string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tpt",
	Short: "TaskPilot - plan your day in plain English",
	Long: `TaskPilot turns plain-English commands into task, goal, and objective
mutations: "add task Call mom tomorrow at 5pm", "mark standup as done",
"move dentist to friday".

Commands above the confidence threshold execute immediately; everything
else is echoed back as an interpretation for you to confirm.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config resolution for commands that don't need it. The
		// config commands load it themselves so they can report problems
		// instead of dying here.
		switch cmd.Name() {
		case "completion", "help", "version", "config":
			return nil
		}
		if cmd.Parent() != nil {
			switch cmd.Parent().Name() {
			case "completion", "config":
				return nil
			}
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if ui.ColorEnabled() {
			ui.ConfigureTheme(cfg.UI.Accent)
		}

		if dataDirFlag != "" {
			resolvedDataDir = dataDirFlag
		} else {
			resolvedDataDir, err = cfg.ResolveDataDir()
			if err != nil {
				return fmt.Errorf("failed to resolve data directory: %w", err)
			}
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Path to data directory (overrides data_dir in config)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "default", "User whose records to operate on")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

func loadGlobalConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// openStore opens the database under the resolved data directory.
func openStore() (*store.Store, error) {
	return store.Open(resolvedDataDir)
}

// openEngine wires the store, audit log, and vocabulary into an engine.
// The caller closes the returned store when done.
func openEngine() (*engine.Engine, *store.Store, *audit.Logger, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, nil, err
	}

	userVocab, err := config.LoadVocabulary(cfg.Vocabulary)
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}
	vocab := engine.DefaultVocabulary().WithExtensions(userVocab.Fields, userVocab.Statuses)

	weekStart, err := cfg.ResolveWeekStart()
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}

	logger := audit.New(resolvedDataDir, cfg.AuditEnabled())
	eng := engine.New(st, engine.Options{
		Vocabulary:      vocab,
		DefaultDuration: cfg.ResolveDefaultDuration(),
		WeekStart:       weekStartPtr(weekStart),
		Recorder:        logger,
	})
	return eng, st, logger, nil
}

func weekStartPtr(d time.Weekday) *time.Weekday {
	return &d
}
