// Package store handles SQLite persistence for tasks, goals, and objectives.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mhutch/taskpilot/internal/model"
)

// ErrNotFound indicates the requested record does not exist for this user.
var ErrNotFound = errors.New("record not found")

// Store is the SQLite-backed repository. It satisfies engine.Repository.
type Store struct {
	db *sql.DB
}

// DB returns the underlying sql.DB for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Open opens or creates the database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "taskpilot.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	schema := `
	PRAGMA journal_mode = WAL;
	PRAGMA foreign_keys = ON;

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		scheduled_date TEXT NOT NULL DEFAULT '',
		scheduled_time TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'medium',
		status TEXT NOT NULL DEFAULT 'pending',
		estimated_duration INTEGER NOT NULL DEFAULT 30,
		location TEXT NOT NULL DEFAULT '',
		goal_id TEXT NOT NULL DEFAULT '',
		objective_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_user_date ON tasks(user_id, scheduled_date);

	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		year INTEGER NOT NULL,
		priority TEXT NOT NULL DEFAULT 'medium',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);

	CREATE TABLE IF NOT EXISTS objectives (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		goal_id TEXT NOT NULL,
		title TEXT NOT NULL,
		priority TEXT NOT NULL DEFAULT 'medium',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_objectives_user ON objectives(user_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// ListTasks returns the user's tasks, optionally bounded by scheduled date,
// in creation order so reference resolution is deterministic.
func (s *Store) ListTasks(ctx context.Context, userID string, rng *model.DateRange) ([]model.Task, error) {
	query := `SELECT id, user_id, title, description, scheduled_date, scheduled_time,
		priority, status, estimated_duration, location, goal_id, objective_id, created_at, updated_at
		FROM tasks WHERE user_id = ?`
	args := []interface{}{userID}

	if rng != nil {
		if rng.From != "" {
			query += " AND scheduled_date >= ?"
			args = append(args, rng.From)
		}
		if rng.To != "" {
			query += " AND scheduled_date <= ?"
			args = append(args, rng.To)
		}
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.ScheduledDate,
			&t.ScheduledTime, &t.Priority, &t.Status, &t.EstimatedDuration, &t.Location,
			&t.GoalID, &t.ObjectiveID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask fetches one task by ID.
func (s *Store) GetTask(ctx context.Context, userID, id string) (model.Task, error) {
	var t model.Task
	err := s.db.QueryRowContext(ctx, `SELECT id, user_id, title, description, scheduled_date,
		scheduled_time, priority, status, estimated_duration, location, goal_id, objective_id,
		created_at, updated_at FROM tasks WHERE user_id = ? AND id = ?`, userID, id).
		Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.ScheduledDate, &t.ScheduledTime,
			&t.Priority, &t.Status, &t.EstimatedDuration, &t.Location, &t.GoalID, &t.ObjectiveID,
			&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// CreateTask inserts a task.
func (s *Store) CreateTask(ctx context.Context, task model.Task) error {
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO tasks
		(id, user_id, title, description, scheduled_date, scheduled_time, priority, status,
		 estimated_duration, location, goal_id, objective_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, task.Description, task.ScheduledDate, task.ScheduledTime,
		task.Priority, task.Status, task.EstimatedDuration, task.Location, task.GoalID,
		task.ObjectiveID, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// UpdateTask applies a partial update and returns the updated record.
func (s *Store) UpdateTask(ctx context.Context, userID, id string, update model.TaskUpdate) (model.Task, error) {
	sets := []string{}
	args := []interface{}{}

	appendSet := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if update.Title != nil {
		appendSet("title", *update.Title)
	}
	if update.Description != nil {
		appendSet("description", *update.Description)
	}
	if update.ScheduledDate != nil {
		appendSet("scheduled_date", *update.ScheduledDate)
	}
	if update.ScheduledTime != nil {
		appendSet("scheduled_time", *update.ScheduledTime)
	}
	if update.Priority != nil {
		appendSet("priority", *update.Priority)
	}
	if update.Status != nil {
		appendSet("status", *update.Status)
	}
	if update.EstimatedDuration != nil {
		appendSet("estimated_duration", *update.EstimatedDuration)
	}
	if update.Location != nil {
		appendSet("location", *update.Location)
	}

	if len(sets) == 0 {
		return s.GetTask(ctx, userID, id)
	}

	appendSet("updated_at", time.Now().UTC())
	args = append(args, userID, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE user_id = ? AND id = ?", args...)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Task{}, err
	}
	if affected == 0 {
		return model.Task{}, ErrNotFound
	}

	return s.GetTask(ctx, userID, id)
}

// DeleteTask removes exactly one task.
func (s *Store) DeleteTask(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListGoals returns the user's goals in creation order.
func (s *Store) ListGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, title, description, year, priority,
		status, created_at FROM goals WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Year, &g.Priority,
			&g.Status, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// CreateGoal inserts a goal.
func (s *Store) CreateGoal(ctx context.Context, goal model.Goal) error {
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO goals
		(id, user_id, title, description, year, priority, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.Year, goal.Priority,
		goal.Status, goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// ListObjectives returns the user's objectives in creation order.
func (s *Store) ListObjectives(ctx context.Context, userID string) ([]model.Objective, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, goal_id, title, priority, status,
		created_at FROM objectives WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}
	defer rows.Close()

	var objectives []model.Objective
	for rows.Next() {
		var o model.Objective
		if err := rows.Scan(&o.ID, &o.UserID, &o.GoalID, &o.Title, &o.Priority, &o.Status,
			&o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan objective: %w", err)
		}
		objectives = append(objectives, o)
	}
	return objectives, rows.Err()
}

// CreateObjective inserts an objective.
func (s *Store) CreateObjective(ctx context.Context, objective model.Objective) error {
	if objective.CreatedAt.IsZero() {
		objective.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO objectives
		(id, user_id, goal_id, title, priority, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		objective.ID, objective.UserID, objective.GoalID, objective.Title, objective.Priority,
		objective.Status, objective.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create objective: %w", err)
	}
	return nil
}
