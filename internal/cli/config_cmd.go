package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhutch/taskpilot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect TaskPilot configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// resolveConfigPath returns the config file in effect: the --config flag if
// set, else the default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	loaded, err := config.Load(path)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "Fix "+path+" and try again")
	}

	dataDir := dataDirFlag
	if dataDir == "" {
		dataDir, err = loaded.ResolveDataDir()
		if err != nil {
			return handleError(ErrDataDir, err, "Set data_dir in "+path)
		}
	}

	weekStart, err := loaded.ResolveWeekStart()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "Use a full weekday name like 'monday'")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"config_path":      path,
			"data_dir":         dataDir,
			"default_duration": loaded.ResolveDefaultDuration(),
			"week_start":       strings.ToLower(weekStart.String()),
			"audit":            loaded.AuditEnabled(),
			"vocabulary":       loaded.Vocabulary,
			"ui": map[string]interface{}{
				"accent": loaded.UI.Accent,
			},
		}, nil)
		return nil
	}

	fmt.Printf("config: %s\n", path)
	fmt.Printf("data_dir: %s\n", dataDir)
	fmt.Printf("default_duration: %dm\n", loaded.ResolveDefaultDuration())
	fmt.Printf("week_start: %s\n", strings.ToLower(weekStart.String()))
	fmt.Printf("audit: %t\n", loaded.AuditEnabled())
	if loaded.Vocabulary != "" {
		fmt.Printf("vocabulary: %s\n", loaded.Vocabulary)
	}
	if loaded.UI.Accent != "" {
		fmt.Printf("ui.accent: %s\n", loaded.UI.Accent)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
