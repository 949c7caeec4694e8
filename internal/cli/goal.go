package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhutch/taskpilot/internal/model"
	"github.com/mhutch/taskpilot/internal/ui"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals directly",
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		goals, err := st.ListGoals(cmd.Context(), userID)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(goals, &Meta{Count: len(goals)})
			return nil
		}

		if len(goals) == 0 {
			fmt.Println(ui.Info("No goals found"))
			return nil
		}
		fmt.Println(ui.Header(ui.Count(len(goals), "goal", "goals")))
		for _, g := range goals {
			fmt.Printf("  %s  %s\n", ui.Title(g.Title),
				ui.Hint(fmt.Sprintf("%d · %s · %s", g.Year, g.Priority, g.Status)))
		}
		return nil
	},
}

var (
	goalAddYear        int
	goalAddPriority    string
	goalAddDescription string
)

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(args[0])
		if title == "" {
			return handleErrorMsg(ErrMissingArgument, "title cannot be empty", "")
		}

		_, st, logger, err := openEngine()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		year := goalAddYear
		if year == 0 {
			year = time.Now().Year()
		}
		priority := strings.ToLower(goalAddPriority)
		if priority == "" {
			priority = model.PriorityMedium
		}
		if !model.IsValidPriority(priority) {
			return handleErrorMsg(ErrValidationFailed,
				fmt.Sprintf("invalid priority '%s'", goalAddPriority),
				"Use one of: "+strings.Join(model.Priorities, ", "))
		}

		goal := model.Goal{
			ID:          model.NewID(title),
			UserID:      userID,
			Title:       title,
			Description: goalAddDescription,
			Year:        year,
			Priority:    priority,
			Status:      model.StatusPending,
		}
		if err := st.CreateGoal(cmd.Context(), goal); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		logger.RecordMutation("create", "goal", goal.ID, map[string]interface{}{
			"title": goal.Title,
			"year":  goal.Year,
		})

		if isJSONOutput() {
			outputSuccess(goal, nil)
			return nil
		}
		fmt.Println(ui.Successf("Created goal '%s' for %d", goal.Title, goal.Year))
		return nil
	},
}

func init() {
	goalAddCmd.Flags().IntVar(&goalAddYear, "year", 0, "Goal year (default current year)")
	goalAddCmd.Flags().StringVar(&goalAddPriority, "priority", "", "Priority (low, medium, high, critical)")
	goalAddCmd.Flags().StringVar(&goalAddDescription, "description", "", "Description")

	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalAddCmd)
	rootCmd.AddCommand(goalCmd)
}
