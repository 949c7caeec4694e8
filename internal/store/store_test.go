package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mhutch/taskpilot/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreateTask(t *testing.T, s *Store, task model.Task) model.Task {
	t.Helper()
	if err := s.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func TestTaskCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := mustCreateTask(t, s, model.Task{
		ID:                "call-mom-abc123",
		UserID:            "u1",
		Title:             "Call mom",
		ScheduledDate:     "2026-09-01",
		ScheduledTime:     "17:00",
		Priority:          model.PriorityMedium,
		Status:            model.StatusPending,
		EstimatedDuration: 30,
	})

	got, err := s.GetTask(ctx, "u1", task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Title != "Call mom" || got.ScheduledTime != "17:00" {
		t.Errorf("unexpected task: %+v", got)
	}

	status := model.StatusCompleted
	updated, err := s.UpdateTask(ctx, "u1", task.ID, model.TaskUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Status != model.StatusCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}

	if err := s.DeleteTask(ctx, "u1", task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := s.GetTask(ctx, "u1", task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTask after delete = %v, want ErrNotFound", err)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	title := "whatever"
	_, err := s.UpdateTask(context.Background(), "u1", "missing", model.TaskUpdate{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteTask(context.Background(), "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListTasksDateRange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, model.Task{ID: "a", UserID: "u1", Title: "Monday", ScheduledDate: "2026-09-07", Status: model.StatusPending, Priority: model.PriorityMedium, EstimatedDuration: 30})
	mustCreateTask(t, s, model.Task{ID: "b", UserID: "u1", Title: "Wednesday", ScheduledDate: "2026-09-09", Status: model.StatusPending, Priority: model.PriorityMedium, EstimatedDuration: 30})
	mustCreateTask(t, s, model.Task{ID: "c", UserID: "u1", Title: "Next month", ScheduledDate: "2026-10-01", Status: model.StatusPending, Priority: model.PriorityMedium, EstimatedDuration: 30})

	tasks, err := s.ListTasks(ctx, "u1", &model.DateRange{From: "2026-09-07", To: "2026-09-13"})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want 2", len(tasks))
	}

	all, err := s.ListTasks(ctx, "u1", nil)
	if err != nil {
		t.Fatalf("ListTasks(nil range): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len = %d, want 3", len(all))
	}
}

func TestListTasksUserScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, model.Task{ID: "a", UserID: "u1", Title: "Mine", Status: model.StatusPending, Priority: model.PriorityMedium, EstimatedDuration: 30})
	mustCreateTask(t, s, model.Task{ID: "b", UserID: "u2", Title: "Theirs", Status: model.StatusPending, Priority: model.PriorityMedium, EstimatedDuration: 30})

	tasks, err := s.ListTasks(ctx, "u1", nil)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Mine" {
		t.Errorf("got %+v, want only u1's task", tasks)
	}

	// ID alone is not enough; the owning user must match too.
	if _, err := s.GetTask(ctx, "u1", "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user GetTask = %v, want ErrNotFound", err)
	}
}

func TestGoalsAndObjectives(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	goal := model.Goal{
		ID:       "marathon-x1",
		UserID:   "u1",
		Title:    "Run a marathon",
		Year:     2026,
		Priority: model.PriorityMedium,
		Status:   model.StatusPending,
	}
	if err := s.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	objective := model.Objective{
		ID:       "run-10k-y2",
		UserID:   "u1",
		GoalID:   goal.ID,
		Title:    "Run 10k",
		Priority: model.PriorityMedium,
		Status:   model.StatusPending,
	}
	if err := s.CreateObjective(ctx, objective); err != nil {
		t.Fatalf("CreateObjective: %v", err)
	}

	goals, err := s.ListGoals(ctx, "u1")
	if err != nil {
		t.Fatalf("ListGoals: %v", err)
	}
	if len(goals) != 1 || goals[0].Title != "Run a marathon" {
		t.Errorf("goals = %+v", goals)
	}

	objectives, err := s.ListObjectives(ctx, "u1")
	if err != nil {
		t.Fatalf("ListObjectives: %v", err)
	}
	if len(objectives) != 1 || objectives[0].GoalID != goal.ID {
		t.Errorf("objectives = %+v", objectives)
	}
}

func TestListOrderIsCreationOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Same created_at timestamps fall back to ID order, so resolution over
	// the list stays deterministic.
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"c", "a", "b"} {
		mustCreateTask(t, s, model.Task{
			ID: id, UserID: "u1", Title: "Task " + id,
			Status: model.StatusPending, Priority: model.PriorityMedium, EstimatedDuration: 30,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			UpdatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	tasks, err := s.ListTasks(ctx, "u1", nil)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("len = %d, want 3", len(tasks))
	}
	for i, want := range []string{"c", "a", "b"} {
		if tasks[i].ID != want {
			t.Errorf("tasks[%d] = %s, want %s (creation order)", i, tasks[i].ID, want)
		}
	}
}
