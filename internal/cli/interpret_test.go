package cli

import (
	"strings"
	"testing"

	"github.com/mhutch/taskpilot/internal/engine"
)

func TestParseFieldFlags(t *testing.T) {
	fields, err := parseFieldFlags([]string{"date=2026-12-24", "priority=high"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["date"] != "2026-12-24" || fields["priority"] != "high" {
		t.Errorf("fields = %v", fields)
	}

	if _, err := parseFieldFlags([]string{"no-equals"}); err == nil {
		t.Error("malformed flag should error")
	}
	if _, err := parseFieldFlags([]string{"=value"}); err == nil {
		t.Error("empty key should error")
	}

	fields, err = parseFieldFlags(nil)
	if err != nil || fields != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", fields, err)
	}
}

func TestResultErrorCode(t *testing.T) {
	tests := []struct {
		err  string
		code string
	}{
		{"extract: what should the task be called?", ErrMissingEntity},
		{"resolve: no task found matching 'zzqx'", ErrTargetNotFound},
		{"validate: duration must be positive", ErrValidationFailed},
		{"execute: could not save task", ErrExecutionFailed},
		{"classify: unsupported intent", ErrInterpretFailed},
		{"no stage prefix", ErrInterpretFailed},
	}
	for _, tt := range tests {
		result := engine.ExecutionResult{Err: tt.err}
		if got := resultErrorCode(result); got != tt.code {
			t.Errorf("resultErrorCode(%q) = %s, want %s", tt.err, got, tt.code)
		}
	}
}

func TestLowConfidenceWarnings(t *testing.T) {
	high := engine.Command{Intent: engine.IntentAddTask, Confidence: 0.85}
	if warnings := lowConfidenceWarnings(high); warnings != nil {
		t.Errorf("auto-executable command should carry no warnings, got %v", warnings)
	}

	low := engine.Command{Intent: engine.IntentAskQuestion, Confidence: 0.6}
	warnings := lowConfidenceWarnings(low)
	if len(warnings) != 1 {
		t.Fatalf("want one warning, got %v", warnings)
	}
	if warnings[0].Code != ErrLowConfidence {
		t.Errorf("code = %s, want %s", warnings[0].Code, ErrLowConfidence)
	}
	if !strings.Contains(warnings[0].Message, "0.60") {
		t.Errorf("message %q should state the confidence", warnings[0].Message)
	}
}
