// Package audit provides an append-only audit log of executed mutations.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp time.Time              `json:"ts"`
	Operation string                 `json:"op"`     // create, update, delete
	Entity    string                 `json:"entity"` // task, goal, objective
	ID        string                 `json:"id,omitempty"`
	Changes   map[string]interface{} `json:"changes,omitempty"`
	RawText   string                 `json:"raw_text,omitempty"` // originating command text, when known
}

// Logger handles writing to the audit log. The zero-value-disabled form is a
// no-op, so callers never need nil checks.
type Logger struct {
	path    string
	enabled bool
	rawText string
	mu      sync.Mutex
}

// New creates an audit logger writing under dataDir.
// If enabled is false, the logger is a no-op.
func New(dataDir string, enabled bool) *Logger {
	if !enabled {
		return &Logger{enabled: false}
	}
	return &Logger{
		path:    filepath.Join(dataDir, "audit.log"),
		enabled: true,
	}
}

// SetRawText attaches the originating command text to subsequent entries.
func (l *Logger) SetRawText(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rawText = text
}

// Log writes an entry to the audit log.
func (l *Logger) Log(entry Entry) error {
	if !l.enabled {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.RawText == "" {
		entry.RawText = l.rawText
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(string(data) + "\n"); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

// RecordMutation satisfies the engine's mutation recorder. Audit failures
// are deliberately swallowed: the mutation already happened and the command
// must not fail after the fact.
func (l *Logger) RecordMutation(op, entity, id string, changes map[string]interface{}) {
	_ = l.Log(Entry{
		Operation: op,
		Entity:    entity,
		ID:        id,
		Changes:   changes,
	})
}

// Path returns the audit log path ("" when disabled).
func (l *Logger) Path() string {
	if !l.enabled {
		return ""
	}
	return l.path
}
