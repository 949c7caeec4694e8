package engine

import (
	"fmt"
	"strconv"
	"time"
)

// Slot names the logical pieces of information extracted from text.
type Slot string

const (
	SlotTitle        Slot = "title"
	SlotTarget       Slot = "target" // free-text reference to an existing record
	SlotDate         Slot = "date"
	SlotTime         Slot = "time"
	SlotDuration     Slot = "duration"
	SlotPriority     Slot = "priority"
	SlotStatus       Slot = "status"
	SlotField        Slot = "field"
	SlotNewValue     Slot = "newValue"
	SlotGoal         Slot = "goal"
	SlotObjective    Slot = "objective"
	SlotLocation     Slot = "location"
	SlotDescription  Slot = "description"
	SlotQuestionType Slot = "questionType"
)

// ValueKind discriminates the closed set of entity value types.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueDate
	ValueEnum
)

// Value is a tagged union over the entity value kinds. Normalization and
// validation switch exhaustively on Kind, so the set is closed.
type Value struct {
	kind ValueKind
	str  string
	num  int
	date time.Time
}

// StringValue wraps a raw extracted string.
func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

// NumberValue wraps an integer quantity (e.g. a duration in minutes).
func NumberValue(n int) Value { return Value{kind: ValueNumber, num: n} }

// DateValue wraps a resolved calendar date.
func DateValue(t time.Time) Value { return Value{kind: ValueDate, date: t} }

// EnumValue wraps a member of a closed value domain (priority, status).
func EnumValue(s string) Value { return Value{kind: ValueEnum, str: s} }

// Kind returns the value's discriminant.
func (v Value) Kind() ValueKind { return v.kind }

// AsString returns the string payload for ValueString and ValueEnum values.
func (v Value) AsString() (string, bool) {
	if v.kind == ValueString || v.kind == ValueEnum {
		return v.str, true
	}
	return "", false
}

// AsNumber returns the numeric payload for ValueNumber values.
func (v Value) AsNumber() (int, bool) {
	if v.kind == ValueNumber {
		return v.num, true
	}
	return 0, false
}

// AsDate returns the date payload for ValueDate values.
func (v Value) AsDate() (time.Time, bool) {
	if v.kind == ValueDate {
		return v.date, true
	}
	return time.Time{}, false
}

// Text returns a display form of the value regardless of kind.
func (v Value) Text() string {
	switch v.kind {
	case ValueNumber:
		return strconv.Itoa(v.num)
	case ValueDate:
		return v.date.Format("2006-01-02")
	default:
		return v.str
	}
}

// String implements fmt.Stringer for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case ValueNumber:
		return fmt.Sprintf("number(%d)", v.num)
	case ValueDate:
		return fmt.Sprintf("date(%s)", v.date.Format("2006-01-02"))
	case ValueEnum:
		return fmt.Sprintf("enum(%s)", v.str)
	default:
		return fmt.Sprintf("string(%s)", v.str)
	}
}

// EntityBag maps slots to extracted values. Absence of a slot is meaningful:
// it triggers fallback extraction or a "please specify" failure downstream.
type EntityBag map[Slot]Value

// Has reports whether the slot has been filled.
func (b EntityBag) Has(slot Slot) bool {
	_, ok := b[slot]
	return ok
}

// Get returns the value for a slot.
func (b EntityBag) Get(slot Slot) (Value, bool) {
	v, ok := b[slot]
	return v, ok
}

// Text returns the display form of a slot's value, or "" when absent.
func (b EntityBag) Text(slot Slot) string {
	v, ok := b[slot]
	if !ok {
		return ""
	}
	return v.Text()
}

// SetIfAbsent fills a slot only when no earlier cascade stage has. The first
// stage to fill a slot wins.
func (b EntityBag) SetIfAbsent(slot Slot, v Value) {
	if _, ok := b[slot]; !ok {
		b[slot] = v
	}
}

// Strings returns the bag as plain display strings, for output and logging.
func (b EntityBag) Strings() map[string]string {
	if len(b) == 0 {
		return nil
	}
	out := make(map[string]string, len(b))
	for slot, v := range b {
		out[string(slot)] = v.Text()
	}
	return out
}
