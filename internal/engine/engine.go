// Package engine turns free-form natural-language sentences into safely
// executable, validated mutations against a user's tasks, goals, and
// objectives.
//
// The pipeline is classify → extract → resolve references → normalize and
// validate → execute exactly one mutation through the Repository. Every
// stage is pure computation except the repository calls; the engine holds no
// mutable state of its own, so concurrent commands need no locking here.
package engine

import (
	"context"
	"time"

	"github.com/mhutch/taskpilot/internal/model"
)

// AutoExecuteThreshold is the contract constant above which a caller may
// auto-execute a command. At or below it, the interpretation should be
// returned to the user for confirmation instead. Not tunable per call.
const AutoExecuteThreshold = 0.7

// Repository is the external collaborator holding durable state. All reads
// and writes are scoped by user; the engine never reaches across users.
type Repository interface {
	ListTasks(ctx context.Context, userID string, rng *model.DateRange) ([]model.Task, error)
	CreateTask(ctx context.Context, task model.Task) error
	UpdateTask(ctx context.Context, userID, id string, update model.TaskUpdate) (model.Task, error)
	DeleteTask(ctx context.Context, userID, id string) error

	ListGoals(ctx context.Context, userID string) ([]model.Goal, error)
	CreateGoal(ctx context.Context, goal model.Goal) error

	ListObjectives(ctx context.Context, userID string) ([]model.Objective, error)
	CreateObjective(ctx context.Context, objective model.Objective) error
}

// MutationRecorder receives a record of every executed mutation, e.g. for
// audit logging. Implementations must not fail the command.
type MutationRecorder interface {
	RecordMutation(op, entity, id string, changes map[string]interface{})
}

// Command is one classified and extracted input. It is constructed once,
// enriched through the pipeline stages in strict sequence, and consumed
// exactly once by Execute.
type Command struct {
	RawText    string     `json:"raw_text"`
	Intent     IntentKind `json:"intent"`
	Entities   EntityBag  `json:"-"`
	Confidence float64    `json:"confidence"`
}

// AutoExecutable reports whether the contract allows executing this command
// without user confirmation.
func (c Command) AutoExecutable() bool {
	return c.Confidence > AutoExecuteThreshold
}

// ExecutionResult is the uniform output of every dispatched command. The
// engine has exactly one failure channel: all error kinds collapse to this
// shape, with the originating stage recorded in Err for diagnostics.
type ExecutionResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Err     string      `json:"error,omitempty"`
}

// Pipeline stage names recorded in failure diagnostics.
const (
	StageClassify = "classify"
	StageExtract  = "extract"
	StageResolve  = "resolve"
	StageValidate = "validate"
	StageExecute  = "execute"
)

// Options configures an Engine. Zero values select defaults.
type Options struct {
	// Vocabulary overrides the built-in synonym tables.
	Vocabulary *Vocabulary

	// Now overrides the clock, for deterministic date normalization in tests.
	Now func() time.Time

	// DefaultDuration is the estimated duration, in minutes, assigned to
	// tasks created without one. Defaults to 30.
	DefaultDuration int

	// WeekStart anchors weekly-progress queries. Nil defaults to Monday.
	WeekStart *time.Weekday

	// Recorder, when set, is notified of every executed mutation.
	Recorder MutationRecorder
}

// Engine is the natural-language command resolution engine. It is stateless
// per invocation and safe for concurrent use.
type Engine struct {
	repo            Repository
	vocab           *Vocabulary
	now             func() time.Time
	defaultDuration int
	weekStart       time.Weekday
	recorder        MutationRecorder
}

// New creates an Engine over the given repository.
func New(repo Repository, opts Options) *Engine {
	e := &Engine{
		repo:            repo,
		vocab:           opts.Vocabulary,
		now:             opts.Now,
		defaultDuration: opts.DefaultDuration,
		weekStart:       time.Monday,
		recorder:        opts.Recorder,
	}
	if e.vocab == nil {
		e.vocab = DefaultVocabulary()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.defaultDuration <= 0 {
		e.defaultDuration = 30
	}
	if opts.WeekStart != nil {
		e.weekStart = *opts.WeekStart
	}
	return e
}

// Parse classifies the text and extracts its entities. It never fails:
// unmatched input degrades to a low-confidence ask_question command.
func (e *Engine) Parse(text string) Command {
	return e.ParseWithProvided(text, nil)
}

// ParseWithProvided is Parse with caller-supplied structured fields, which
// take precedence over anything extracted from the text.
func (e *Engine) ParseWithProvided(text string, provided map[string]string) Command {
	intent, confidence := Classify(text)
	entities := Extract(ExtractInput{Text: text, Intent: intent, Provided: provided})
	return Command{
		RawText:    text,
		Intent:     intent,
		Entities:   entities,
		Confidence: confidence,
	}
}

// Interpret is the sole high-level entry point: classify, extract, and
// execute in one call. The returned Command carries the confidence the
// caller needs for the auto-execute gate; Interpret itself always executes.
func (e *Engine) Interpret(ctx context.Context, userID, text string) (Command, ExecutionResult) {
	cmd := e.Parse(text)
	return cmd, e.Execute(ctx, userID, cmd)
}

func (e *Engine) record(op, entity, id string, changes map[string]interface{}) {
	if e.recorder != nil {
		e.recorder.RecordMutation(op, entity, id, changes)
	}
}

func success(message string, data interface{}) ExecutionResult {
	return ExecutionResult{Success: true, Message: message, Data: data}
}

func failure(stage, message string) ExecutionResult {
	return ExecutionResult{Success: false, Message: message, Err: stage + ": " + message}
}
