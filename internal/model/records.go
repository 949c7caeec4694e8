// Package model defines the record types shared by the engine, store, and CLI.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	goslug "github.com/gosimple/slug"
)

// Priority levels for tasks, goals, and objectives.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Priorities lists the valid priority values in ascending order.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Status values for tasks, goals, and objectives.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Statuses lists the valid status values.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// IsValidPriority reports whether p is a canonical priority value.
func IsValidPriority(p string) bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is a canonical status value.
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Task is a single schedulable item belonging to a user.
type Task struct {
	// ID uniquely identifies this task, e.g. "call-mom-3f2a91".
	ID string `json:"id"`

	// UserID scopes the task to its owner. All store reads and writes
	// are scoped by this value.
	UserID string `json:"user_id"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// ScheduledDate is the planned date in YYYY-MM-DD form, empty if unscheduled.
	ScheduledDate string `json:"scheduled_date,omitempty"`

	// ScheduledTime is the planned start time in HH:MM (24-hour) form.
	ScheduledTime string `json:"scheduled_time,omitempty"`

	Priority string `json:"priority"`
	Status   string `json:"status"`

	// EstimatedDuration is the expected duration in minutes.
	EstimatedDuration int `json:"estimated_duration"`

	Location string `json:"location,omitempty"`

	// GoalID and ObjectiveID are optional parent links.
	GoalID      string `json:"goal_id,omitempty"`
	ObjectiveID string `json:"objective_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Goal is a yearly ambition that objectives and tasks roll up to.
type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Year        int       `json:"year"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Objective is a milestone under a goal.
type Objective struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	GoalID    string    `json:"goal_id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskUpdate is a partial update to a task. Nil fields are left unchanged.
type TaskUpdate struct {
	Title             *string
	Description       *string
	ScheduledDate     *string
	ScheduledTime     *string
	Priority          *string
	Status            *string
	EstimatedDuration *int
	Location          *string
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.ScheduledDate == nil &&
		u.ScheduledTime == nil && u.Priority == nil && u.Status == nil &&
		u.EstimatedDuration == nil && u.Location == nil
}

// Changes returns the non-nil fields as a map for audit logging.
func (u TaskUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.ScheduledDate != nil {
		changes["scheduled_date"] = *u.ScheduledDate
	}
	if u.ScheduledTime != nil {
		changes["scheduled_time"] = *u.ScheduledTime
	}
	if u.Priority != nil {
		changes["priority"] = *u.Priority
	}
	if u.Status != nil {
		changes["status"] = *u.Status
	}
	if u.EstimatedDuration != nil {
		changes["estimated_duration"] = *u.EstimatedDuration
	}
	if u.Location != nil {
		changes["location"] = *u.Location
	}
	return changes
}

// DateRange bounds a store query by scheduled date (inclusive).
// Zero-value bounds are open.
type DateRange struct {
	From string // YYYY-MM-DD, inclusive
	To   string // YYYY-MM-DD, inclusive
}

// NewID builds a record ID from a title: a slug prefix for readability plus
// a short random suffix for uniqueness, e.g. "call-mom-3f2a91".
func NewID(title string) string {
	s := goslug.Make(title)
	if len(s) > 40 {
		s = s[:40]
		s = strings.TrimRight(s, "-")
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	if s == "" {
		return suffix
	}
	return s + "-" + suffix
}
