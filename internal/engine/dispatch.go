package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/mhutch/taskpilot/internal/dates"
	"github.com/mhutch/taskpilot/internal/model"
)

// maxSampleTitles caps how many existing titles a "not found" failure lists
// to help the user rephrase.
const maxSampleTitles = 5

// Execute routes a parsed command to exactly one repository mutation (or a
// read-only answer) and returns a uniform result. It never panics past this
// boundary and never commits a partial mutation: a failure at any stage
// returns immediately with the originating stage in the error.
func (e *Engine) Execute(ctx context.Context, userID string, cmd Command) ExecutionResult {
	switch cmd.Intent {
	case IntentAddTask:
		return e.executeAddTask(ctx, userID, cmd)
	case IntentModifyTask:
		return e.executeModifyTask(ctx, userID, cmd)
	case IntentDeleteTask:
		return e.executeDeleteTask(ctx, userID, cmd)
	case IntentScheduleTask:
		return e.executeScheduleTask(ctx, userID, cmd)
	case IntentCreateGoal:
		return e.executeCreateGoal(ctx, userID, cmd)
	case IntentCreateObjective:
		return e.executeCreateObjective(ctx, userID, cmd)
	case IntentCreateRoadmap:
		return e.executeCreateRoadmap(cmd)
	case IntentAskQuestion:
		return e.executeQuestion(ctx, userID, cmd)
	default:
		return failure(StageClassify, fmt.Sprintf("unsupported intent '%s'", cmd.Intent))
	}
}

func (e *Engine) executeAddTask(ctx context.Context, userID string, cmd Command) ExecutionResult {
	title := strings.TrimSpace(cmd.Entities.Text(SlotTitle))
	if title == "" {
		return failure(StageExtract, `what should the task be called? Try: add task "Call mom" tomorrow at 5pm`)
	}
	if err := Validate(FieldTitle, StringValue(title)); err != nil {
		return failure(StageValidate, err.Error())
	}

	now := e.now()
	task := model.Task{
		ID:                model.NewID(title),
		UserID:            userID,
		Title:             title,
		Priority:          model.PriorityMedium,
		Status:            model.StatusPending,
		EstimatedDuration: e.defaultDuration,
		ScheduledDate:     dates.StartOfDay(now).Format(dates.DateLayout),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if raw, ok := cmd.Entities.Get(SlotDate); ok {
		normalized, _ := e.vocab.NormalizeValue(FieldScheduledDate, raw, now)
		if d, isDate := normalized.AsDate(); isDate {
			task.ScheduledDate = d.Format(dates.DateLayout)
		}
	}
	if raw, ok := cmd.Entities.Get(SlotTime); ok {
		normalized, err := e.vocab.NormalizeValue(FieldScheduledTime, raw, now)
		if err != nil {
			return failure(StageValidate, err.Error())
		}
		task.ScheduledTime = normalized.Text()
	}
	if raw, ok := cmd.Entities.Get(SlotDuration); ok {
		normalized, _ := e.vocab.NormalizeValue(FieldEstimatedDuration, raw, now)
		if err := Validate(FieldEstimatedDuration, normalized); err != nil {
			return failure(StageValidate, err.Error())
		}
		n, _ := normalized.AsNumber()
		task.EstimatedDuration = n
	}
	if raw, ok := cmd.Entities.Get(SlotPriority); ok {
		normalized, _ := e.vocab.NormalizeValue(FieldPriority, raw, now)
		task.Priority = normalized.Text()
	}

	// Parent links are best-effort: an unresolved goal or objective name is
	// silently omitted, never a failure.
	if goalName := cmd.Entities.Text(SlotGoal); goalName != "" {
		if goals, err := e.repo.ListGoals(ctx, userID); err == nil {
			if ref := Resolve(goalName, goalCandidates(goals)); ref.Found() {
				task.GoalID = ref.ResolvedID
			}
		}
	}
	if objectiveName := cmd.Entities.Text(SlotObjective); objectiveName != "" {
		if objectives, err := e.repo.ListObjectives(ctx, userID); err == nil {
			if ref := Resolve(objectiveName, objectiveCandidates(objectives)); ref.Found() {
				task.ObjectiveID = ref.ResolvedID
			}
		}
	}

	if err := e.repo.CreateTask(ctx, task); err != nil {
		return failure(StageExecute, fmt.Sprintf("could not save task: %v", err))
	}
	e.record("create", "task", task.ID, map[string]interface{}{"title": task.Title, "scheduled_date": task.ScheduledDate})

	msg := fmt.Sprintf("Added task '%s' for %s", task.Title, task.ScheduledDate)
	if task.ScheduledTime != "" {
		msg += " at " + task.ScheduledTime
	}
	return success(msg, task)
}

func (e *Engine) executeModifyTask(ctx context.Context, userID string, cmd Command) ExecutionResult {
	task, res, ok := e.resolveTask(ctx, userID, cmd)
	if !ok {
		return res
	}

	rawField := cmd.Entities.Text(SlotField)
	var rawValue Value
	if v, has := cmd.Entities.Get(SlotNewValue); has {
		rawValue = v
	}

	// The entity bag may not have yielded a pair; fall back to scanning the
	// raw text with the same modification patterns.
	if rawField == "" || rawValue.Text() == "" {
		if f, v, found := extractFieldUpdate(cmd.RawText); found {
			rawField, rawValue = f, StringValue(v)
		}
	}
	if rawField == "" || rawValue.Text() == "" {
		return failure(StageExtract,
			fmt.Sprintf("what should change on '%s'? Try: change %s priority to high, or: mark %s as completed",
				task.Title, strings.ToLower(task.Title), strings.ToLower(task.Title)))
	}

	normalized, err := e.vocab.NormalizeUpdate(rawField, rawValue, e.now())
	if err != nil {
		return failure(StageValidate, err.Error())
	}

	update := taskUpdateFor(normalized)
	updated, err := e.repo.UpdateTask(ctx, userID, task.ID, update)
	if err != nil {
		return failure(StageExecute, fmt.Sprintf("could not update task: %v", err))
	}
	e.record("update", "task", task.ID, update.Changes())

	return success(fmt.Sprintf("Updated '%s': %s is now %s", task.Title, normalized.Field, normalized.Value.Text()), updated)
}

func (e *Engine) executeDeleteTask(ctx context.Context, userID string, cmd Command) ExecutionResult {
	task, res, ok := e.resolveTask(ctx, userID, cmd)
	if !ok {
		return res
	}

	// Deletes exactly the one matched record, never a bulk fuzzy delete.
	if err := e.repo.DeleteTask(ctx, userID, task.ID); err != nil {
		return failure(StageExecute, fmt.Sprintf("could not delete task: %v", err))
	}
	e.record("delete", "task", task.ID, map[string]interface{}{"title": task.Title})

	return success(fmt.Sprintf("Deleted task '%s'", task.Title), nil)
}

func (e *Engine) executeScheduleTask(ctx context.Context, userID string, cmd Command) ExecutionResult {
	task, res, ok := e.resolveTask(ctx, userID, cmd)
	if !ok {
		return res
	}

	var update model.TaskUpdate
	now := e.now()

	if raw, has := cmd.Entities.Get(SlotDate); has {
		normalized, _ := e.vocab.NormalizeValue(FieldScheduledDate, raw, now)
		if d, isDate := normalized.AsDate(); isDate {
			day := d.Format(dates.DateLayout)
			update.ScheduledDate = &day
		}
	}
	if raw, has := cmd.Entities.Get(SlotTime); has {
		normalized, err := e.vocab.NormalizeValue(FieldScheduledTime, raw, now)
		if err != nil {
			return failure(StageValidate, err.Error())
		}
		clock := normalized.Text()
		update.ScheduledTime = &clock
	}

	if update.IsEmpty() {
		return failure(StageExtract,
			fmt.Sprintf("when should '%s' be? Try: move %s to tomorrow at 3pm", task.Title, strings.ToLower(task.Title)))
	}

	updated, err := e.repo.UpdateTask(ctx, userID, task.ID, update)
	if err != nil {
		return failure(StageExecute, fmt.Sprintf("could not reschedule task: %v", err))
	}
	e.record("update", "task", task.ID, update.Changes())

	parts := []string{}
	if update.ScheduledDate != nil {
		parts = append(parts, *update.ScheduledDate)
	}
	if update.ScheduledTime != nil {
		parts = append(parts, "at "+*update.ScheduledTime)
	}
	return success(fmt.Sprintf("Moved '%s' to %s", task.Title, strings.Join(parts, " ")), updated)
}

func (e *Engine) executeCreateGoal(ctx context.Context, userID string, cmd Command) ExecutionResult {
	title := strings.TrimSpace(cmd.Entities.Text(SlotTitle))
	if title == "" {
		return failure(StageExtract, `what is the goal? Try: create a goal to "Run a marathon"`)
	}
	if err := Validate(FieldTitle, StringValue(title)); err != nil {
		return failure(StageValidate, err.Error())
	}

	now := e.now()
	goal := model.Goal{
		ID:        model.NewID(title),
		UserID:    userID,
		Title:     title,
		Year:      now.Year(),
		Priority:  model.PriorityMedium,
		Status:    model.StatusPending,
		CreatedAt: now,
	}
	if raw, ok := cmd.Entities.Get(SlotPriority); ok {
		normalized, _ := e.vocab.NormalizeValue(FieldPriority, raw, now)
		goal.Priority = normalized.Text()
	}

	if err := e.repo.CreateGoal(ctx, goal); err != nil {
		return failure(StageExecute, fmt.Sprintf("could not save goal: %v", err))
	}
	e.record("create", "goal", goal.ID, map[string]interface{}{"title": goal.Title, "year": goal.Year})

	return success(fmt.Sprintf("Created goal '%s' for %d", goal.Title, goal.Year), goal)
}

func (e *Engine) executeCreateObjective(ctx context.Context, userID string, cmd Command) ExecutionResult {
	title := strings.TrimSpace(cmd.Entities.Text(SlotTitle))
	if title == "" {
		return failure(StageExtract, `what is the objective? Try: add objective "Run 10k" under goal marathon`)
	}
	if err := Validate(FieldTitle, StringValue(title)); err != nil {
		return failure(StageValidate, err.Error())
	}

	// An objective must hang off a goal; an unresolved goal reference is a
	// hard failure, unlike the optional link on add_task.
	goalName := strings.TrimSpace(cmd.Entities.Text(SlotGoal))
	if goalName == "" {
		return failure(StageExtract, "which goal is this objective for? Try: add objective \"Run 10k\" under goal marathon")
	}

	goals, err := e.repo.ListGoals(ctx, userID)
	if err != nil {
		return failure(StageExecute, fmt.Sprintf("could not load goals: %v", err))
	}
	ref := Resolve(goalName, goalCandidates(goals))
	if !ref.Found() {
		return failure(StageResolve, notFoundMessage("goal", goalName, goalCandidates(goals)))
	}

	now := e.now()
	objective := model.Objective{
		ID:        model.NewID(title),
		UserID:    userID,
		GoalID:    ref.ResolvedID,
		Title:     title,
		Priority:  model.PriorityMedium,
		Status:    model.StatusPending,
		CreatedAt: now,
	}

	if err := e.repo.CreateObjective(ctx, objective); err != nil {
		return failure(StageExecute, fmt.Sprintf("could not save objective: %v", err))
	}
	e.record("create", "objective", objective.ID, map[string]interface{}{"title": objective.Title, "goal_id": objective.GoalID})

	return success(fmt.Sprintf("Created objective '%s' under goal '%s'", objective.Title, ref.Title), objective)
}

// executeCreateRoadmap recognizes the intent but does not decompose it: the
// planning service owns roadmap generation, and the engine never guesses at
// multi-step plans.
func (e *Engine) executeCreateRoadmap(cmd Command) ExecutionResult {
	return failure(StageExecute, "roadmap generation requires the planning service, which is not available here; try creating a goal instead")
}

// resolveTask resolves the command's target reference to a single task. On
// failure the returned result holds the user-facing error and ok is false.
func (e *Engine) resolveTask(ctx context.Context, userID string, cmd Command) (model.Task, ExecutionResult, bool) {
	query := strings.TrimSpace(cmd.Entities.Text(SlotTarget))
	if query == "" {
		return model.Task{}, failure(StageExtract, "which task do you mean? Name it, e.g.: mark dentist appointment as completed"), false
	}

	tasks, err := e.repo.ListTasks(ctx, userID, nil)
	if err != nil {
		return model.Task{}, failure(StageExecute, fmt.Sprintf("could not load tasks: %v", err)), false
	}

	candidates := taskCandidates(tasks)
	ref := Resolve(query, candidates)
	if !ref.Found() {
		return model.Task{}, failure(StageResolve, notFoundMessage("task", query, candidates)), false
	}

	for _, t := range tasks {
		if t.ID == ref.ResolvedID {
			return t, ExecutionResult{}, true
		}
	}
	// The resolver only returns IDs present in candidates.
	return model.Task{}, failure(StageResolve, notFoundMessage("task", query, candidates)), false
}

func notFoundMessage(kind, query string, candidates []Candidate) string {
	samples := SampleTitles(candidates, maxSampleTitles)
	if len(samples) == 0 {
		return fmt.Sprintf("no %s found matching '%s' (you have none yet)", kind, query)
	}
	return fmt.Sprintf("no %s found matching '%s'; existing %ss include: %s", kind, query, kind, strings.Join(samples, ", "))
}

// taskUpdateFor maps a validated field/value pair onto a partial task update.
func taskUpdateFor(u NormalizedUpdate) model.TaskUpdate {
	var update model.TaskUpdate
	switch u.Field {
	case FieldTitle:
		s := u.Value.Text()
		update.Title = &s
	case FieldDescription:
		s := u.Value.Text()
		update.Description = &s
	case FieldScheduledDate:
		s := u.Value.Text()
		update.ScheduledDate = &s
	case FieldScheduledTime:
		s := u.Value.Text()
		update.ScheduledTime = &s
	case FieldPriority:
		s := u.Value.Text()
		update.Priority = &s
	case FieldStatus:
		s := u.Value.Text()
		update.Status = &s
	case FieldEstimatedDuration:
		if n, ok := u.Value.AsNumber(); ok {
			update.EstimatedDuration = &n
		}
	case FieldLocation:
		s := u.Value.Text()
		update.Location = &s
	}
	return update
}

func taskCandidates(tasks []model.Task) []Candidate {
	candidates := make([]Candidate, len(tasks))
	for i, t := range tasks {
		candidates[i] = Candidate{ID: t.ID, Title: t.Title}
	}
	return candidates
}

func goalCandidates(goals []model.Goal) []Candidate {
	candidates := make([]Candidate, len(goals))
	for i, g := range goals {
		candidates[i] = Candidate{ID: g.ID, Title: g.Title}
	}
	return candidates
}

func objectiveCandidates(objectives []model.Objective) []Candidate {
	candidates := make([]Candidate, len(objectives))
	for i, o := range objectives {
		candidates[i] = Candidate{ID: o.ID, Title: o.Title}
	}
	return candidates
}
