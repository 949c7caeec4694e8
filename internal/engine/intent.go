package engine

import "strings"

// IntentKind is the closed set of actions the engine can infer from text.
type IntentKind string

const (
	IntentAddTask         IntentKind = "add_task"
	IntentModifyTask      IntentKind = "modify_task"
	IntentDeleteTask      IntentKind = "delete_task"
	IntentScheduleTask    IntentKind = "schedule_task"
	IntentCreateGoal      IntentKind = "create_goal"
	IntentCreateObjective IntentKind = "create_objective"
	IntentCreateRoadmap   IntentKind = "create_roadmap"
	IntentAskQuestion     IntentKind = "ask_question"
)

// DefaultConfidence is assigned when no classification rule matches and the
// engine falls through to ask_question. It must never auto-execute.
const DefaultConfidence = 0.3

// intentRule is a single ordered classification rule. Confidence is a fixed
// constant per rule, not a probability; callers gate on it deterministically.
type intentRule struct {
	intent     IntentKind
	confidence float64
	match      func(text string) bool
}

var creationVerbs = []string{"create", "make", "build", "generate", "plan", "start", "new", "add", "set up"}

// intentRules are evaluated in order; the first match wins. Broad concepts
// are checked before narrower ones that share keywords: a roadmap request
// always contains goal-ish language, so it must be ruled on first.
var intentRules = []intentRule{
	{IntentCreateRoadmap, 0.85, func(t string) bool {
		return containsAny(t, "roadmap", "strategy", "journey") && containsAny(t, creationVerbs...)
	}},
	{IntentCreateObjective, 0.8, func(t string) bool {
		return containsAny(t, "objective", "milestone") && containsAny(t, creationVerbs...)
	}},
	{IntentCreateGoal, 0.8, func(t string) bool {
		return strings.Contains(t, "goal") && containsAny(t, creationVerbs...)
	}},
	{IntentAddTask, 0.85, func(t string) bool {
		return containsAny(t, "add task", "add a task", "create task", "create a task", "new task", "remind me to", "i need to")
	}},
	{IntentDeleteTask, 0.8, func(t string) bool {
		return containsAny(t, "delete", "remove", "get rid of")
	}},
	{IntentScheduleTask, 0.75, func(t string) bool {
		return containsAny(t, "schedule", "reschedule", "move", "postpone", "push back")
	}},
	{IntentModifyTask, 0.75, func(t string) bool {
		return containsAny(t, "change", "update", "modify", "rename", "mark", "set ", "switch")
	}},
	{IntentAddTask, 0.6, func(t string) bool {
		return containsAny(t, "add", "create")
	}},
	{IntentAskQuestion, 0.6, func(t string) bool {
		return strings.HasSuffix(strings.TrimSpace(t), "?") ||
			containsAny(t, "what", "when", "how many", "how much", "how long", "do i", "am i", "show me", "tell me")
	}},
}

// Classify assigns an intent and a fixed confidence score to the input text.
// It never refuses: unmatched text degrades to ask_question at
// DefaultConfidence rather than erroring.
func Classify(text string) (IntentKind, float64) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, rule := range intentRules {
		if rule.match(normalized) {
			return rule.intent, rule.confidence
		}
	}

	return IntentAskQuestion, DefaultConfidence
}

func containsAny(text string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}
