package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhutch/taskpilot/internal/engine"
	"github.com/mhutch/taskpilot/internal/ui"
)

var (
	interpretYes    bool
	interpretDryRun bool
	interpretFields []string
)

var interpretCmd = &cobra.Command{
	Use:     "interpret <text>",
	Aliases: []string{"do"},
	Short:   "Interpret and execute a natural-language command",
	Long: `Interprets a plain-English command and executes the resulting mutation.

Commands interpreted with high confidence execute immediately. Lower-confidence
interpretations are shown for confirmation first (use --yes to skip the prompt).

Examples:
  tpt do "add task Call mom tomorrow at 5pm for 30 minutes"
  tpt do "change team sync priority to critical"
  tpt do "mark standup as done"
  tpt do "move dentist appointment to friday"
  tpt do "delete the onboarding draft"
  tpt do "how many tasks do I have today?"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := args[0]

		eng, st, logger, err := openEngine()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		provided, err := parseFieldFlags(interpretFields)
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use --field key=value")
		}

		command := eng.ParseWithProvided(text, provided)

		if interpretDryRun {
			return outputInterpretation(command, false)
		}

		if !command.AutoExecutable() && !interpretYes {
			if isJSONOutput() {
				// Non-interactive: report the interpretation and let the
				// caller re-run with --yes.
				return outputInterpretation(command, true)
			}
			if !confirmInterpretation(command) {
				fmt.Println(ui.Hint("Cancelled. Re-run with --yes to skip confirmation."))
				return nil
			}
		}

		logger.SetRawText(text)
		result := eng.Execute(cmd.Context(), userID, command)

		if !result.Success {
			return handleErrorMsg(resultErrorCode(result), result.Message, "")
		}

		warnings := lowConfidenceWarnings(command)
		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"message": result.Message,
				"result":  result.Data,
			}, warnings, &Meta{Intent: string(command.Intent), Confidence: command.Confidence})
			return nil
		}
		fmt.Println(ui.Success(result.Message))
		for _, w := range warnings {
			fmt.Println(ui.Warning(w.Message))
		}
		return nil
	},
}

func init() {
	interpretCmd.Flags().BoolVarP(&interpretYes, "yes", "y", false, "Execute without confirming low-confidence interpretations")
	interpretCmd.Flags().BoolVar(&interpretDryRun, "dry-run", false, "Show the interpretation without executing")
	interpretCmd.Flags().StringArrayVar(&interpretFields, "field", nil, "Structured field override (key=value), takes precedence over extraction")
	rootCmd.AddCommand(interpretCmd)
}

// parseFieldFlags turns repeated --field key=value flags into a map.
func parseFieldFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	fields := make(map[string]string, len(flags))
	for _, f := range flags {
		parts := strings.SplitN(f, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid --field '%s'", f)
		}
		fields[parts[0]] = parts[1]
	}
	return fields, nil
}

// outputInterpretation reports a parsed command without executing it.
func outputInterpretation(cmd engine.Command, needsConfirmation bool) error {
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"command":            cmd,
			"entities":           cmd.Entities.Strings(),
			"executed":           false,
			"needs_confirmation": needsConfirmation,
		}, &Meta{Intent: string(cmd.Intent), Confidence: cmd.Confidence})
		return nil
	}

	printInterpretation(cmd)
	if needsConfirmation {
		fmt.Println(ui.Hint("Re-run with --yes to execute."))
	}
	return nil
}

// confirmInterpretation shows the interpretation and prompts for approval.
func confirmInterpretation(cmd engine.Command) bool {
	printInterpretation(cmd)
	fmt.Printf("Execute? [y/N] ")

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func printInterpretation(cmd engine.Command) {
	fmt.Println(ui.Header("Interpretation"))
	fmt.Printf("  Intent:     %s\n", cmd.Intent)
	fmt.Printf("  Confidence: %.2f\n", cmd.Confidence)
	for slot, value := range cmd.Entities.Strings() {
		fmt.Printf("  %-11s %s\n", slot+":", value)
	}
}

// lowConfidenceWarnings flags an execution that went ahead below the
// auto-execute threshold (via confirmation or --yes).
func lowConfidenceWarnings(cmd engine.Command) []Warning {
	if cmd.AutoExecutable() {
		return nil
	}
	return []Warning{{
		Code:    ErrLowConfidence,
		Message: fmt.Sprintf("interpreted with confidence %.2f, below the auto-execute threshold", cmd.Confidence),
	}}
}

// resultErrorCode maps an execution failure to a stable error code using the
// stage recorded in the result.
func resultErrorCode(result engine.ExecutionResult) string {
	stage, _, found := strings.Cut(result.Err, ":")
	if !found {
		return ErrInterpretFailed
	}
	switch stage {
	case engine.StageExtract:
		return ErrMissingEntity
	case engine.StageResolve:
		return ErrTargetNotFound
	case engine.StageValidate:
		return ErrValidationFailed
	case engine.StageExecute:
		return ErrExecutionFailed
	default:
		return ErrInterpretFailed
	}
}
