package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mhutch/taskpilot/internal/dates"
	"github.com/mhutch/taskpilot/internal/model"
)

// CanonicalField is a normalized field name the dispatcher may mutate.
type CanonicalField string

const (
	FieldTitle             CanonicalField = "title"
	FieldDescription       CanonicalField = "description"
	FieldScheduledDate     CanonicalField = "scheduledDate"
	FieldScheduledTime     CanonicalField = "scheduledTime"
	FieldPriority          CanonicalField = "priority"
	FieldStatus            CanonicalField = "status"
	FieldEstimatedDuration CanonicalField = "estimatedDuration"
	FieldLocation          CanonicalField = "location"
)

// TitleMaxLen bounds task titles (1..TitleMaxLen characters).
const TitleMaxLen = 200

// NormalizedUpdate is a validated field/value pair, the only form the
// dispatcher passes into a mutation.
type NormalizedUpdate struct {
	Field CanonicalField
	Value Value
}

// Vocabulary holds the synonym tables used for field and value
// normalization. It is built once at startup and read-only afterwards, so it
// is safe for concurrent use without locking.
type Vocabulary struct {
	fields   map[string]CanonicalField
	statuses map[string]string
}

// DefaultVocabulary returns the built-in synonym tables.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		fields: map[string]CanonicalField{
			"title":       FieldTitle,
			"name":        FieldTitle,
			"desc":        FieldDescription,
			"description": FieldDescription,
			"notes":       FieldDescription,
			"prio":        FieldPriority,
			"priority":    FieldPriority,
			"date":        FieldScheduledDate,
			"day":         FieldScheduledDate,
			"time":        FieldScheduledTime,
			"duration":    FieldEstimatedDuration,
			"length":      FieldEstimatedDuration,
			"status":      FieldStatus,
			"state":       FieldStatus,
			"location":    FieldLocation,
			"where":       FieldLocation,
			"place":       FieldLocation,
		},
		statuses: map[string]string{
			"done":     model.StatusCompleted,
			"finished": model.StatusCompleted,
			"complete": model.StatusCompleted,
			"todo":     model.StatusPending,
			"working":  model.StatusInProgress,
			"active":   model.StatusInProgress,
			"canceled": model.StatusCancelled,
		},
	}
}

// WithExtensions returns a copy of the vocabulary merged with user-supplied
// synonyms. Extensions never override built-in entries. The receiver is not
// modified.
func (v *Vocabulary) WithExtensions(fieldSynonyms map[string]string, statusSynonyms map[string]string) *Vocabulary {
	merged := &Vocabulary{
		fields:   make(map[string]CanonicalField, len(v.fields)+len(fieldSynonyms)),
		statuses: make(map[string]string, len(v.statuses)+len(statusSynonyms)),
	}
	for k, val := range v.fields {
		merged.fields[k] = val
	}
	for k, val := range v.statuses {
		merged.statuses[k] = val
	}

	canonicalFields := map[string]CanonicalField{}
	for _, f := range []CanonicalField{FieldTitle, FieldDescription, FieldScheduledDate,
		FieldScheduledTime, FieldPriority, FieldStatus, FieldEstimatedDuration, FieldLocation} {
		canonicalFields[string(f)] = f
	}

	for synonym, target := range fieldSynonyms {
		key := strings.ToLower(strings.TrimSpace(synonym))
		if _, exists := merged.fields[key]; exists {
			continue
		}
		// A user synonym must point at either a canonical field name or an
		// already-known synonym.
		if cf, ok := canonicalFields[target]; ok {
			merged.fields[key] = cf
		} else if cf, ok := merged.fields[strings.ToLower(target)]; ok {
			merged.fields[key] = cf
		}
	}
	for synonym, target := range statusSynonyms {
		key := strings.ToLower(strings.TrimSpace(synonym))
		if _, exists := merged.statuses[key]; exists {
			continue
		}
		for _, s := range model.Statuses {
			if strings.EqualFold(strings.TrimSpace(target), s) {
				merged.statuses[key] = s
				break
			}
		}
	}

	return merged
}

// NormalizeField maps a raw field name or synonym to its canonical field.
func (v *Vocabulary) NormalizeField(raw string) (CanonicalField, bool) {
	field, ok := v.fields[strings.ToLower(strings.TrimSpace(raw))]
	return field, ok
}

// NormalizeValue canonicalizes a raw value for the given field:
//
//   - dates: relative keywords and weekday names resolve against now; ISO
//     dates pass through; anything else tries generic parsing and falls back
//     to today
//   - times: H, H:MM, and 12-hour forms convert to canonical HH:MM
//   - priority: case-folds into the priority enum, defaulting to medium
//     (documented lossy fallback, not an error)
//   - status: synonym table, else case-folded input (validation rejects
//     non-members)
//   - duration: integer minutes; non-numeric input is passed through for
//     Validate to reject, never silently coerced
func (v *Vocabulary) NormalizeValue(field CanonicalField, raw Value, now time.Time) (Value, error) {
	switch field {
	case FieldScheduledDate:
		return normalizeDate(raw, now), nil

	case FieldScheduledTime:
		s, ok := raw.AsString()
		if !ok {
			if n, isNum := raw.AsNumber(); isNum {
				s = strconv.Itoa(n)
			} else {
				return raw, fmt.Errorf("cannot interpret %s as a time", raw)
			}
		}
		canonical, err := dates.ParseClockTime(s)
		if err != nil {
			return raw, fmt.Errorf("cannot interpret '%s' as a time (use forms like 9, 9:30, 5pm, 17:00)", s)
		}
		return StringValue(canonical), nil

	case FieldPriority:
		s, _ := raw.AsString()
		return EnumValue(normalizePriority(s)), nil

	case FieldStatus:
		s, _ := raw.AsString()
		return EnumValue(v.normalizeStatus(s)), nil

	case FieldEstimatedDuration:
		if _, ok := raw.AsNumber(); ok {
			return raw, nil
		}
		s, _ := raw.AsString()
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return NumberValue(n), nil
		}
		if m := durationRe.FindStringSubmatch(s); m != nil {
			return NumberValue(durationMinutes(m[1], m[2])), nil
		}
		return raw, nil // left raw; Validate rejects it

	default:
		s, _ := raw.AsString()
		return StringValue(strings.TrimSpace(s)), nil
	}
}

// normalizeDate resolves a raw date value to a concrete day. Unparseable
// input deliberately falls back to today rather than failing.
func normalizeDate(raw Value, now time.Time) Value {
	if d, ok := raw.AsDate(); ok {
		return DateValue(dates.StartOfDay(d))
	}

	s, _ := raw.AsString()
	if t, err := dates.ParseDateArg(s, now); err == nil {
		return DateValue(t)
	}

	for _, layout := range []string{"Jan 2 2006", "January 2 2006", "Jan 2, 2006", "January 2, 2006", "01/02/2006", "2006/01/02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return DateValue(t)
		}
	}

	return DateValue(dates.StartOfDay(now))
}

func normalizePriority(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case model.PriorityLow:
		return model.PriorityLow
	case model.PriorityHigh:
		return model.PriorityHigh
	case model.PriorityCritical, "urgent":
		return model.PriorityCritical
	default:
		// Includes "medium", "normal", and anything unrecognized.
		return model.PriorityMedium
	}
}

func (v *Vocabulary) normalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	if canonical, ok := v.statuses[s]; ok {
		return canonical
	}
	return s
}

// Validate enforces domain membership and bounds on a normalized value. It
// is the last checkpoint before any mutation and must run after
// normalization, never before.
func Validate(field CanonicalField, value Value) error {
	switch field {
	case FieldTitle:
		s, ok := value.AsString()
		if !ok {
			return fmt.Errorf("title must be text")
		}
		s = strings.TrimSpace(s)
		if len(s) == 0 {
			return fmt.Errorf("title must not be empty")
		}
		if len(s) > TitleMaxLen {
			return fmt.Errorf("title must be at most %d characters (got %d)", TitleMaxLen, len(s))
		}

	case FieldPriority:
		s, _ := value.AsString()
		if !containsString(model.Priorities, s) {
			return fmt.Errorf("priority must be one of %s", strings.Join(model.Priorities, "/"))
		}

	case FieldStatus:
		s, _ := value.AsString()
		if !containsString(model.Statuses, s) {
			return fmt.Errorf("status must be one of %s", strings.Join(model.Statuses, "/"))
		}

	case FieldEstimatedDuration:
		n, ok := value.AsNumber()
		if !ok {
			return fmt.Errorf("duration must be a number of minutes, got '%s'", value.Text())
		}
		if n <= 0 {
			return fmt.Errorf("duration must be positive, got %d", n)
		}

	case FieldScheduledDate:
		if _, ok := value.AsDate(); !ok {
			if s, isStr := value.AsString(); !isStr || !dates.IsValidDate(s) {
				return fmt.Errorf("date must be in YYYY-MM-DD form")
			}
		}

	case FieldScheduledTime:
		s, ok := value.AsString()
		if !ok || !dates.IsValidTime(s) {
			return fmt.Errorf("time must be in HH:MM (24-hour) form")
		}
	}

	return nil
}

// NormalizeUpdate runs a raw field/value pair through the full pipeline:
// field synonym mapping, value normalization, then validation.
func (v *Vocabulary) NormalizeUpdate(rawField string, rawValue Value, now time.Time) (NormalizedUpdate, error) {
	field, ok := v.NormalizeField(rawField)
	if !ok {
		return NormalizedUpdate{}, fmt.Errorf("unknown field '%s'", rawField)
	}

	value, err := v.NormalizeValue(field, rawValue, now)
	if err != nil {
		return NormalizedUpdate{}, err
	}

	if err := Validate(field, value); err != nil {
		return NormalizedUpdate{}, err
	}

	return NormalizedUpdate{Field: field, Value: value}, nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
