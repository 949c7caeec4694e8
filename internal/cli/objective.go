package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhutch/taskpilot/internal/engine"
	"github.com/mhutch/taskpilot/internal/model"
	"github.com/mhutch/taskpilot/internal/ui"
)

var objectiveCmd = &cobra.Command{
	Use:     "objective",
	Aliases: []string{"obj"},
	Short:   "Manage objectives directly",
}

var objectiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List objectives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		objectives, err := st.ListObjectives(cmd.Context(), userID)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(objectives, &Meta{Count: len(objectives)})
			return nil
		}

		if len(objectives) == 0 {
			fmt.Println(ui.Info("No objectives found"))
			return nil
		}
		fmt.Println(ui.Header(ui.Count(len(objectives), "objective", "objectives")))
		for _, o := range objectives {
			fmt.Printf("  %s  %s\n", ui.Title(o.Title),
				ui.Hint(fmt.Sprintf("goal:%s · %s · %s", o.GoalID, o.Priority, o.Status)))
		}
		return nil
	},
}

var (
	objectiveAddGoal     string
	objectiveAddPriority string
)

var objectiveAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an objective under a goal",
	Long: `Adds an objective linked to an existing goal. The goal is matched by
name, the same way natural-language references are resolved.

Example:
  tpt objective add "Run a 10k" --goal "get in shape"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(args[0])
		if title == "" {
			return handleErrorMsg(ErrMissingArgument, "title cannot be empty", "")
		}
		if strings.TrimSpace(objectiveAddGoal) == "" {
			return handleErrorMsg(ErrMissingArgument, "a goal is required", "Use --goal \"<goal name>\"")
		}

		_, st, logger, err := openEngine()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		goals, err := st.ListGoals(cmd.Context(), userID)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		candidates := make([]engine.Candidate, len(goals))
		for i, g := range goals {
			candidates[i] = engine.Candidate{ID: g.ID, Title: g.Title}
		}
		ref := engine.Resolve(objectiveAddGoal, candidates)
		if !ref.Found() {
			return handleErrorMsg(ErrGoalNotFound,
				fmt.Sprintf("no goal matching '%s'", objectiveAddGoal),
				"Run 'tpt goal list' to see your goals")
		}

		priority := strings.ToLower(objectiveAddPriority)
		if priority == "" {
			priority = model.PriorityMedium
		}
		if !model.IsValidPriority(priority) {
			return handleErrorMsg(ErrValidationFailed,
				fmt.Sprintf("invalid priority '%s'", objectiveAddPriority),
				"Use one of: "+strings.Join(model.Priorities, ", "))
		}

		objective := model.Objective{
			ID:       model.NewID(title),
			UserID:   userID,
			GoalID:   ref.ResolvedID,
			Title:    title,
			Priority: priority,
			Status:   model.StatusPending,
		}
		if err := st.CreateObjective(cmd.Context(), objective); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		logger.RecordMutation("create", "objective", objective.ID, map[string]interface{}{
			"title":   objective.Title,
			"goal_id": objective.GoalID,
		})

		if isJSONOutput() {
			outputSuccess(objective, nil)
			return nil
		}
		fmt.Println(ui.Successf("Created objective '%s' under '%s'", objective.Title, ref.Title))
		return nil
	},
}

func init() {
	objectiveAddCmd.Flags().StringVar(&objectiveAddGoal, "goal", "", "Goal this objective belongs to (matched by name)")
	objectiveAddCmd.Flags().StringVar(&objectiveAddPriority, "priority", "", "Priority (low, medium, high, critical)")

	objectiveCmd.AddCommand(objectiveListCmd)
	objectiveCmd.AddCommand(objectiveAddCmd)
	rootCmd.AddCommand(objectiveCmd)
}
