// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"
	ErrDataDir       = "DATA_DIR_ERROR"

	// Interpretation errors
	ErrInterpretFailed  = "INTERPRET_FAILED"
	ErrLowConfidence    = "LOW_CONFIDENCE"
	ErrMissingEntity    = "MISSING_ENTITY"
	ErrTargetNotFound   = "TARGET_NOT_FOUND"
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrExecutionFailed  = "EXECUTION_FAILED"

	// Record errors
	ErrTaskNotFound = "TASK_NOT_FOUND"
	ErrGoalNotFound = "GOAL_NOT_FOUND"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"
)
