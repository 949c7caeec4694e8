package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func withConfigPath(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })
}

func TestConfigShow(t *testing.T) {
	withConfigPath(t, "data_dir = \"/tmp/taskpilot-test\"\nweek_start = \"sunday\"\n")

	if err := runConfigShow(configShowCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigShowInvalidConfig(t *testing.T) {
	withConfigPath(t, "data_dir = [broken")

	if err := runConfigShow(configShowCmd, nil); err == nil {
		t.Fatal("invalid config should error")
	}
}

func TestConfigShowInvalidWeekStart(t *testing.T) {
	withConfigPath(t, "data_dir = \"/tmp/taskpilot-test\"\nweek_start = \"someday\"\n")

	if err := runConfigShow(configShowCmd, nil); err == nil {
		t.Fatal("invalid week_start should error")
	}
}
