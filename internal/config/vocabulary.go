package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary is a user-supplied synonym file, merged into the engine's
// built-in tables at startup. Example:
//
//	fields:
//	  due: date
//	  when: time
//	statuses:
//	  shipped: completed
//	  parked: cancelled
type Vocabulary struct {
	// Fields maps extra field synonyms to canonical field names.
	Fields map[string]string `yaml:"fields"`

	// Statuses maps extra status synonyms to canonical status values.
	Statuses map[string]string `yaml:"statuses"`
}

// LoadVocabulary reads a YAML vocabulary file. An empty path or missing file
// yields an empty vocabulary, not an error.
func LoadVocabulary(path string) (*Vocabulary, error) {
	vocab := &Vocabulary{}
	if path == "" {
		return vocab, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return vocab, nil
		}
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	if err := yaml.Unmarshal(data, vocab); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	return vocab, nil
}
