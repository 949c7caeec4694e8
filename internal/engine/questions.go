package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/mhutch/taskpilot/internal/dates"
	"github.com/mhutch/taskpilot/internal/model"
)

// Question kinds the dispatcher can answer read-only from repository data.
const (
	QuestionCount          = "count"
	QuestionNextTask       = "next_task"
	QuestionTimeRemaining  = "time_remaining"
	QuestionWeeklyProgress = "weekly_progress"
	QuestionSummary        = "summary"
)

// executeQuestion answers an interrogative input from current repository
// data. Questions never mutate and always succeed with a best-effort answer.
func (e *Engine) executeQuestion(ctx context.Context, userID string, cmd Command) ExecutionResult {
	kind := cmd.Entities.Text(SlotQuestionType)
	if kind == "" {
		kind = QuestionSummary
	}

	switch kind {
	case QuestionCount:
		return e.answerCount(ctx, userID)
	case QuestionNextTask:
		return e.answerNextTask(ctx, userID)
	case QuestionTimeRemaining:
		return e.answerTimeRemaining(ctx, userID)
	case QuestionWeeklyProgress:
		return e.answerWeeklyProgress(ctx, userID)
	default:
		return e.answerSummary(ctx, userID)
	}
}

func (e *Engine) todayRange() *model.DateRange {
	today := dates.StartOfDay(e.now()).Format(dates.DateLayout)
	return &model.DateRange{From: today, To: today}
}

func (e *Engine) answerCount(ctx context.Context, userID string) ExecutionResult {
	tasks, err := e.repo.ListTasks(ctx, userID, e.todayRange())
	if err != nil {
		return failure(StageExecute, fmt.Sprintf("could not load tasks: %v", err))
	}

	open := 0
	for _, t := range tasks {
		if t.Status == model.StatusPending || t.Status == model.StatusInProgress {
			open++
		}
	}

	msg := fmt.Sprintf("You have %d open of %d tasks today", open, len(tasks))
	return success(msg, map[string]interface{}{"open": open, "total": len(tasks)})
}

func (e *Engine) answerNextTask(ctx context.Context, userID string) ExecutionResult {
	tasks, err := e.repo.ListTasks(ctx, userID, e.todayRange())
	if err != nil {
		return failure(StageExecute, fmt.Sprintf("could not load tasks: %v", err))
	}

	pending := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == model.StatusPending || t.Status == model.StatusInProgress {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return success("Nothing left today — you're clear", nil)
	}

	// Timed tasks first in clock order, then untimed in list order.
	sort.SliceStable(pending, func(i, j int) bool {
		ti, tj := pending[i].ScheduledTime, pending[j].ScheduledTime
		if ti == "" {
			return false
		}
		if tj == "" {
			return true
		}
		return ti < tj
	})

	next := pending[0]
	msg := fmt.Sprintf("Next up: '%s'", next.Title)
	if next.ScheduledTime != "" {
		msg += " at " + next.ScheduledTime
	}
	return success(msg, next)
}

func (e *Engine) answerTimeRemaining(ctx context.Context, userID string) ExecutionResult {
	tasks, err := e.repo.ListTasks(ctx, userID, e.todayRange())
	if err != nil {
		return failure(StageExecute, fmt.Sprintf("could not load tasks: %v", err))
	}

	minutes := 0
	count := 0
	for _, t := range tasks {
		if t.Status == model.StatusPending || t.Status == model.StatusInProgress {
			minutes += t.EstimatedDuration
			count++
		}
	}

	msg := fmt.Sprintf("About %s of work left today across %d tasks", formatMinutes(minutes), count)
	return success(msg, map[string]interface{}{"minutes": minutes, "tasks": count})
}

func (e *Engine) answerWeeklyProgress(ctx context.Context, userID string) ExecutionResult {
	now := e.now()
	weekStart := dates.StartOfWeek(now, e.weekStart)
	rng := &model.DateRange{
		From: weekStart.Format(dates.DateLayout),
		To:   weekStart.AddDate(0, 0, 6).Format(dates.DateLayout),
	}

	tasks, err := e.repo.ListTasks(ctx, userID, rng)
	if err != nil {
		return failure(StageExecute, fmt.Sprintf("could not load tasks: %v", err))
	}

	completed := 0
	for _, t := range tasks {
		if t.Status == model.StatusCompleted {
			completed++
		}
	}

	percent := 0
	if len(tasks) > 0 {
		percent = completed * 100 / len(tasks)
	}
	msg := fmt.Sprintf("This week: %d of %d tasks completed (%d%%)", completed, len(tasks), percent)
	return success(msg, map[string]interface{}{"completed": completed, "total": len(tasks), "percent": percent})
}

func (e *Engine) answerSummary(ctx context.Context, userID string) ExecutionResult {
	tasks, err := e.repo.ListTasks(ctx, userID, e.todayRange())
	if err != nil {
		return failure(StageExecute, fmt.Sprintf("could not load tasks: %v", err))
	}

	open := 0
	minutes := 0
	for _, t := range tasks {
		if t.Status == model.StatusPending || t.Status == model.StatusInProgress {
			open++
			minutes += t.EstimatedDuration
		}
	}
	if open == 0 {
		return success("All clear today — no open tasks", map[string]interface{}{"open": 0})
	}

	msg := fmt.Sprintf("Today: %d open tasks, roughly %s of work", open, formatMinutes(minutes))
	return success(msg, map[string]interface{}{"open": open, "minutes": minutes})
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%02dm", hours, rest)
}
