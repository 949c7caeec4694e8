package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Every command and flag is part of the agent-facing surface, so each needs a
// usage string.
func TestCommandTreeHasUsage(t *testing.T) {
	var walk func(cmd *cobra.Command, path string)
	walk = func(cmd *cobra.Command, path string) {
		if cmd.Short == "" {
			t.Errorf("command %q has no short description", path)
		}
		cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
			if flag.Usage == "" {
				t.Errorf("flag --%s on %q has no usage string", flag.Name, path)
			}
		})
		for _, sub := range cmd.Commands() {
			walk(sub, path+" "+sub.Name())
		}
	}

	for _, cmd := range rootCmd.Commands() {
		walk(cmd, cmd.Name())
	}
}

func TestInterpretCommandRegistered(t *testing.T) {
	for _, name := range []string{"interpret", "task", "goal", "objective", "config", "version"} {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not registered on root", name)
		}
	}
}
