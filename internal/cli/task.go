package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhutch/taskpilot/internal/dates"
	"github.com/mhutch/taskpilot/internal/engine"
	"github.com/mhutch/taskpilot/internal/model"
	"github.com/mhutch/taskpilot/internal/store"
	"github.com/mhutch/taskpilot/internal/ui"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks directly",
	Long: `Direct task operations for when you already know exactly what you want,
bypassing natural-language interpretation.`,
}

var (
	taskListDate string
	taskListFrom string
	taskListTo   string
)

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `Lists tasks, optionally bounded by scheduled date.

Examples:
  tpt task list
  tpt task list --date today
  tpt task list --date friday
  tpt task list --from 2026-09-01 --to 2026-09-07`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		rng, err := taskListRange(time.Now())
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use YYYY-MM-DD, 'today', 'tomorrow', or a weekday name")
		}

		tasks, err := st.ListTasks(cmd.Context(), userID, rng)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(tasks, &Meta{Count: len(tasks)})
			return nil
		}

		if len(tasks) == 0 {
			fmt.Println(ui.Info("No tasks found"))
			return nil
		}
		dc := ui.NewDisplayContext()
		fmt.Println(ui.Header(ui.Count(len(tasks), "task", "tasks")))
		for _, t := range tasks {
			fmt.Println(formatTaskLine(dc, t))
		}
		return nil
	},
}

var (
	taskAddDate        string
	taskAddTime        string
	taskAddDuration    int
	taskAddPriority    string
	taskAddDescription string
	taskAddLocation    string
)

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Adds a task with explicit fields, no interpretation involved.

Examples:
  tpt task add "Call mom" --date tomorrow --time 5pm
  tpt task add "Quarterly review" --date 2026-09-15 --duration 90 --priority high`,
	Args: cobra.ExactArgs(1),
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

		now := time.Now()
		day, err := dates.ParseDateArg(taskAddDate, now)
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use YYYY-MM-DD, 'today', 'tomorrow', or a weekday name")
		}

		scheduledTime := ""
		if taskAddTime != "" {
			scheduledTime, err = dates.ParseClockTime(taskAddTime)
			if err != nil {
				return handleError(ErrInvalidInput, err, "Use HH:MM or forms like '5pm'")
			}
		}

		duration := taskAddDuration
		if duration <= 0 {
			duration = getConfig().ResolveDefaultDuration()
		}

		priority := strings.ToLower(taskAddPriority)
		if priority == "" {
			priority = model.PriorityMedium
		}
		if !model.IsValidPriority(priority) {
			return handleErrorMsg(ErrValidationFailed,
				fmt.Sprintf("invalid priority '%s'", taskAddPriority),
				"Use one of: "+strings.Join(model.Priorities, ", "))
		}

		task := model.Task{
			ID:                model.NewID(title),
			UserID:            userID,
			Title:             title,
			Description:       taskAddDescription,
			ScheduledDate:     day.Format(dates.DateLayout),
			ScheduledTime:     scheduledTime,
			Priority:          priority,
			Status:            model.StatusPending,
			EstimatedDuration: duration,
			Location:          taskAddLocation,
		}
		if err := st.CreateTask(cmd.Context(), task); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		logger.RecordMutation("create", "task", task.ID, map[string]interface{}{
			"title":          task.Title,
			"scheduled_date": task.ScheduledDate,
		})

		if isJSONOutput() {
			outputSuccess(task, nil)
			return nil
		}
		fmt.Println(ui.Successf("Added task '%s' for %s", task.Title, task.ScheduledDate))
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <title>",
	Short: "Mark a task completed",
	Long: `Marks the named task completed. The title does not have to be exact; it
goes through the same reference resolution as interpreted commands.

Examples:
  tpt task done "Call mom"
  tpt task done standup`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(args[0])
		if query == "" {
			return handleErrorMsg(ErrMissingArgument, "which task?", "")
		}

		_, st, logger, err := openEngine()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		tasks, err := st.ListTasks(cmd.Context(), userID, nil)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		candidates := make([]engine.Candidate, len(tasks))
		for i, t := range tasks {
			candidates[i] = engine.Candidate{ID: t.ID, Title: t.Title}
		}
		ref := engine.Resolve(query, candidates)
		if !ref.Found() {
			return handleErrorMsg(ErrTaskNotFound,
				fmt.Sprintf("no task found matching '%s'", query),
				"Run 'tpt task list' to see your tasks")
		}

		status := model.StatusCompleted
		updated, err := st.UpdateTask(cmd.Context(), userID, ref.ResolvedID, model.TaskUpdate{Status: &status})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return handleErrorMsg(ErrTaskNotFound,
					fmt.Sprintf("task '%s' no longer exists", ref.Title), "")
			}
			return handleError(ErrDatabaseError, err, "")
		}
		logger.RecordMutation("update", "task", updated.ID, map[string]interface{}{"status": status})

		if isJSONOutput() {
			outputSuccess(updated, nil)
			return nil
		}
		fmt.Println(ui.Successf("Completed '%s'", updated.Title))
		return nil
	},
}

func init() {
	taskListCmd.Flags().StringVar(&taskListDate, "date", "", "Only tasks scheduled on this date")
	taskListCmd.Flags().StringVar(&taskListFrom, "from", "", "Start of scheduled-date range (YYYY-MM-DD)")
	taskListCmd.Flags().StringVar(&taskListTo, "to", "", "End of scheduled-date range (YYYY-MM-DD)")

	taskAddCmd.Flags().StringVar(&taskAddDate, "date", "", "Scheduled date (default today)")
	taskAddCmd.Flags().StringVar(&taskAddTime, "time", "", "Scheduled time")
	taskAddCmd.Flags().IntVar(&taskAddDuration, "duration", 0, "Estimated duration in minutes")
	taskAddCmd.Flags().StringVar(&taskAddPriority, "priority", "", "Priority (low, medium, high, critical)")
	taskAddCmd.Flags().StringVar(&taskAddDescription, "description", "", "Description")
	taskAddCmd.Flags().StringVar(&taskAddLocation, "location", "", "Location")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	rootCmd.AddCommand(taskCmd)
}

// taskListRange builds the date filter from --date or --from/--to.
func taskListRange(now time.Time) (*model.DateRange, error) {
	if taskListDate != "" {
		day, err := dates.ParseDateArg(taskListDate, now)
		if err != nil {
			return nil, err
		}
		iso := day.Format(dates.DateLayout)
		return &model.DateRange{From: iso, To: iso}, nil
	}
	if taskListFrom == "" && taskListTo == "" {
		return nil, nil
	}
	for _, d := range []string{taskListFrom, taskListTo} {
		if d != "" && !dates.IsValidDate(d) {
			return nil, fmt.Errorf("invalid date '%s'", d)
		}
	}
	return &model.DateRange{From: taskListFrom, To: taskListTo}, nil
}

func formatTaskLine(dc *ui.DisplayContext, t model.Task) string {
	var details []string
	if t.ScheduledDate != "" {
		details = append(details, t.ScheduledDate)
	}
	if t.ScheduledTime != "" {
		details = append(details, t.ScheduledTime)
	}
	details = append(details, t.Priority, t.Status, fmt.Sprintf("%dm", t.EstimatedDuration))

	// Keep the title from pushing details past the terminal edge.
	title := t.Title
	detailText := strings.Join(details, " · ")
	if max := dc.TermWidth - len(detailText) - 6; max > 10 && len(title) > max {
		title = title[:max-1] + "…"
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(ui.Title(title))
	b.WriteString("  ")
	b.WriteString(ui.Hint(detailText))
	return b.String()
}
