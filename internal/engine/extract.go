package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// ExtractInput carries everything the extractor may draw on. Provided holds
// structured fields the caller already knows (e.g. an API request that sent
// {date: "2026-01-01"} alongside the text); these always win over anything
// recovered from the text itself.
type ExtractInput struct {
	Text     string
	Intent   IntentKind
	Provided map[string]string
}

const (
	weekdayPattern  = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`
	dateWordPattern = `\d{4}-\d{2}-\d{2}|today|tomorrow|yesterday|next\s+(?:` + weekdayPattern + `)|` + weekdayPattern
	clockPattern    = `\d{1,2}:\d{2}\s*(?:am|pm)?|\d{1,2}\s*(?:am|pm)`
	priorityPattern = `low|medium|normal|high|critical|urgent`
	statusPattern   = `done|finished|completed|complete|pending|todo|in[ _-]?progress|working|active|cancelled|canceled`
	fieldPattern    = `title|name|desc|description|notes|priority|prio|date|day|time|duration|length|status|state|location|place|where`
)

var (
	quotedRe = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)

	anchoredDateRe = regexp.MustCompile(`(?i)\b(?:on|for|by|until|due)\s+(` + dateWordPattern + `)\b`)
	bareDateRe     = regexp.MustCompile(`(?i)\b(` + dateWordPattern + `)\b`)
	anchoredTimeRe = regexp.MustCompile(`(?i)\bat\s+(` + clockPattern + `)\b`)
	bareTimeRe     = regexp.MustCompile(`(?i)\b(` + clockPattern + `)\b`)
	durationRe     = regexp.MustCompile(`(?i)\b(\d+)\s*(minutes|minute|mins|min|hours|hour|hrs|hr)\b`)
	priorityRe     = regexp.MustCompile(`(?i)\b(?:priority|prio)\s+(?:to\s+|is\s+)?(` + priorityPattern + `)\b|\b(` + priorityPattern + `)\s+(?:priority|prio)\b`)
	barePriorityRe = regexp.MustCompile(`(?i)\b(` + priorityPattern + `)\b`)
	bareStatusRe   = regexp.MustCompile(`(?i)\b(` + statusPattern + `)\b`)

	addTaskRe = regexp.MustCompile(`(?i)\b(?:add|create)\s+(?:a\s+)?task\s+(?:to\s+|called\s+|named\s+|for\s+)?(.+)$` +
		`|\bnew task:?\s+(.+)$` +
		`|\bremind me to\s+(.+)$` +
		`|\bi need to\s+(.+)$`)
	changeFieldRe = regexp.MustCompile(`(?i)\b(?:change|update|modify|set)\s+(?:the\s+)?(.+?)(?:'s)?\s+(` + fieldPattern + `)\s+to\s+(.+)$`)
	markAsRe      = regexp.MustCompile(`(?i)\bmark\s+(?:the\s+)?(.+?)\s+as\s+(.+)$`)
	renameRe      = regexp.MustCompile(`(?i)\brename\s+(?:the\s+)?(.+?)\s+to\s+(.+)$`)
	scheduleRe    = regexp.MustCompile(`(?i)\b(?:move|reschedule|postpone|schedule|push back)\s+(?:the\s+)?(?:task\s+)?(.+?)\s+(?:to|for|until)\s+(.+)$`)
	deleteRe      = regexp.MustCompile(`(?i)\b(?:delete|remove|get rid of)\s+(?:the\s+)?(?:task\s+)?(.+)$`)
	goalTitleRe   = regexp.MustCompile(`(?i)\bgoal\s*:?\s+(?:to\s+|of\s+)?(.+)$`)
	objectiveRe   = regexp.MustCompile(`(?i)\b(?:objective|milestone)\s*:?\s+(?:to\s+)?(.+)$`)
	forGoalRe     = regexp.MustCompile(`(?i)\s+(?:for|under|toward|towards)\s+(?:the\s+)?goal\s+(.+)$`)

	// titleCutRes mark where a task title ends and trailing modifier
	// clauses begin. The earliest match wins.
	titleCutRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s+(?:on|by|until|due)\s+(?:` + dateWordPattern + `)\b`),
		regexp.MustCompile(`(?i)\s+(?:` + dateWordPattern + `)\b`),
		regexp.MustCompile(`(?i)\s+at\s+(?:` + clockPattern + `)\b`),
		regexp.MustCompile(`(?i)\s+for\s+\d+\s*(?:minutes|minute|mins|min|hours|hour|hrs|hr)\b`),
		regexp.MustCompile(`(?i)\s+with\s+(?:` + priorityPattern + `)\s+(?:priority|prio)\b`),
		regexp.MustCompile(`(?i)\s+(?:for|under|toward|towards)\s+(?:the\s+)?goal\b`),
	}

	leadingVerbRe  = regexp.MustCompile(`(?i)^(?:please\s+)?(?:change|update|modify|set|mark|move|reschedule|postpone|schedule|delete|remove|rename)\s+(?:the\s+)?(?:task\s+)?`)
	trailingTaskRe = regexp.MustCompile(`(?i)\s+task$`)
)

// Extract produces the entity bag for a classified input. Extraction is a
// cascade: caller-provided structured fields first, then anchored patterns
// per intent, then generic token inference. Each stage only fills slots the
// previous stages left empty; an empty bag means "insufficient information"
// and is the dispatcher's cue to ask for clarification instead of guessing.
func Extract(in ExtractInput) EntityBag {
	bag := make(EntityBag)

	seedProvided(bag, in.Provided)

	text := strings.TrimSpace(in.Text)
	switch in.Intent {
	case IntentAddTask:
		extractAddTask(bag, text)
	case IntentModifyTask:
		extractModifyTask(bag, text)
	case IntentDeleteTask:
		extractDeleteTask(bag, text)
	case IntentScheduleTask:
		extractScheduleTask(bag, text)
	case IntentCreateGoal:
		extractCreateGoal(bag, text)
	case IntentCreateObjective:
		extractCreateObjective(bag, text)
	case IntentCreateRoadmap:
		extractCreateGoal(bag, text) // roadmaps anchor on the same goal phrasing
	case IntentAskQuestion:
		bag.SetIfAbsent(SlotQuestionType, StringValue(classifyQuestion(text)))
	}

	inferGeneric(bag, text)

	return bag
}

// seedProvided maps caller-supplied structured fields onto slots. Duration
// arrives as a string and is numberized here; everything else stays raw for
// the normalizer.
func seedProvided(bag EntityBag, provided map[string]string) {
	for key, raw := range provided {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		slot := Slot(key)
		switch slot {
		case SlotDuration:
			if n, err := strconv.Atoi(value); err == nil {
				bag.SetIfAbsent(slot, NumberValue(n))
			}
		case SlotTitle, SlotTarget, SlotDate, SlotTime, SlotPriority, SlotStatus,
			SlotField, SlotNewValue, SlotGoal, SlotObjective, SlotLocation,
			SlotDescription, SlotQuestionType:
			bag.SetIfAbsent(slot, StringValue(value))
		}
	}
}

func extractAddTask(bag EntityBag, text string) {
	if title, ok := quotedText(text); ok {
		bag.SetIfAbsent(SlotTitle, StringValue(title))
	}

	if m := forGoalRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotGoal, StringValue(trimTitle(m[1])))
	}

	if m := addTaskRe.FindStringSubmatch(text); m != nil {
		raw := firstGroup(m[1:])
		bag.SetIfAbsent(SlotTitle, StringValue(trimTitle(raw)))
	} else if !bag.Has(SlotTitle) {
		// No anchor phrase; treat the whole input minus modifiers as the title.
		bag.SetIfAbsent(SlotTitle, StringValue(trimTitle(leadingVerbRe.ReplaceAllString(text, ""))))
	}

	extractDateTime(bag, text)
	if m := priorityRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotPriority, StringValue(strings.ToLower(firstGroup(m[1:]))))
	}
}

func extractModifyTask(bag EntityBag, text string) {
	if m := changeFieldRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotTarget, StringValue(cleanTarget(m[1])))
		bag.SetIfAbsent(SlotField, StringValue(strings.ToLower(m[2])))
		bag.SetIfAbsent(SlotNewValue, StringValue(strings.TrimSpace(m[3])))
		return
	}
	if m := markAsRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotTarget, StringValue(cleanTarget(m[1])))
		field, value := markAsUpdate(m[2])
		bag.SetIfAbsent(SlotField, StringValue(field))
		bag.SetIfAbsent(SlotNewValue, StringValue(value))
		return
	}
	if m := renameRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotTarget, StringValue(cleanTarget(m[1])))
		bag.SetIfAbsent(SlotField, StringValue("title"))
		bag.SetIfAbsent(SlotNewValue, StringValue(strings.TrimSpace(m[2])))
		return
	}

	// No field pattern matched; still try to recover the target so the
	// dispatcher can name it when it asks for the missing field.
	bag.SetIfAbsent(SlotTarget, StringValue(cleanTarget(leadingVerbRe.ReplaceAllString(text, ""))))
}

func extractDeleteTask(bag EntityBag, text string) {
	if m := deleteRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotTarget, StringValue(cleanTarget(m[1])))
	}
}

func extractScheduleTask(bag EntityBag, text string) {
	if m := scheduleRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotTarget, StringValue(cleanTarget(m[1])))
		extractDateTime(bag, m[2])
		return
	}
	bag.SetIfAbsent(SlotTarget, StringValue(cleanTarget(leadingVerbRe.ReplaceAllString(text, ""))))
	extractDateTime(bag, text)
}

func extractCreateGoal(bag EntityBag, text string) {
	if title, ok := quotedText(text); ok {
		bag.SetIfAbsent(SlotTitle, StringValue(title))
		return
	}
	if m := goalTitleRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotTitle, StringValue(strings.TrimSpace(m[1])))
	}
}

func extractCreateObjective(bag EntityBag, text string) {
	if m := forGoalRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotGoal, StringValue(strings.TrimSpace(m[1])))
		text = forGoalRe.ReplaceAllString(text, "")
	}
	if title, ok := quotedText(text); ok {
		bag.SetIfAbsent(SlotTitle, StringValue(title))
		return
	}
	if m := objectiveRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotTitle, StringValue(strings.TrimSpace(m[1])))
	}
}

// extractDateTime fills the date and time slots from anchored phrases,
// falling back to bare date words ("tomorrow", weekday names).
func extractDateTime(bag EntityBag, text string) {
	if m := anchoredTimeRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotTime, StringValue(strings.ToLower(m[1])))
		text = anchoredTimeRe.ReplaceAllString(text, "")
	}
	if m := anchoredDateRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotDate, StringValue(strings.ToLower(m[1])))
	} else if m := bareDateRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotDate, StringValue(strings.ToLower(m[1])))
	}
	if m := durationRe.FindStringSubmatch(text); m != nil {
		bag.SetIfAbsent(SlotDuration, NumberValue(durationMinutes(m[1], m[2])))
	}
}

// inferGeneric is the last cascade stage: a lexical scan for recognizable
// tokens anywhere in the text. The spans already captured as title, target,
// or newValue are blanked first so the scan cannot re-capture words that
// belong to them.
func inferGeneric(bag EntityBag, text string) {
	scan := text
	for _, slot := range []Slot{SlotTitle, SlotTarget, SlotNewValue, SlotGoal} {
		if captured := bag.Text(slot); captured != "" {
			scan = removeSpan(scan, captured)
		}
	}

	if !bag.Has(SlotDate) {
		if m := bareDateRe.FindStringSubmatch(scan); m != nil {
			bag.SetIfAbsent(SlotDate, StringValue(strings.ToLower(m[1])))
		}
	}
	if !bag.Has(SlotTime) {
		if m := anchoredTimeRe.FindStringSubmatch(scan); m != nil {
			bag.SetIfAbsent(SlotTime, StringValue(strings.ToLower(m[1])))
		} else if m := bareTimeRe.FindStringSubmatch(scan); m != nil {
			bag.SetIfAbsent(SlotTime, StringValue(strings.ToLower(m[1])))
		}
	}
	if !bag.Has(SlotDuration) {
		if m := durationRe.FindStringSubmatch(scan); m != nil {
			bag.SetIfAbsent(SlotDuration, NumberValue(durationMinutes(m[1], m[2])))
		}
	}
	if !bag.Has(SlotPriority) {
		if m := priorityRe.FindStringSubmatch(scan); m != nil {
			bag.SetIfAbsent(SlotPriority, StringValue(strings.ToLower(firstGroup(m[1:]))))
		}
	}
	if !bag.Has(SlotStatus) && !bag.Has(SlotNewValue) {
		if m := bareStatusRe.FindStringSubmatch(scan); m != nil {
			bag.SetIfAbsent(SlotStatus, StringValue(strings.ToLower(m[1])))
		}
	}
}

// extractFieldUpdate recovers a (field, newValue) pair from modification
// phrasing. The dispatcher re-runs this over the raw text when the entity
// bag alone does not yield a pair.
func extractFieldUpdate(text string) (field, value string, ok bool) {
	if m := changeFieldRe.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[2]), strings.TrimSpace(m[3]), true
	}
	if m := markAsRe.FindStringSubmatch(text); m != nil {
		field, value := markAsUpdate(m[2])
		return field, value, true
	}
	if m := renameRe.FindStringSubmatch(text); m != nil {
		return "title", strings.TrimSpace(m[2]), true
	}
	if m := priorityRe.FindStringSubmatch(text); m != nil {
		return "priority", strings.ToLower(firstGroup(m[1:])), true
	}
	if m := bareStatusRe.FindStringSubmatch(text); m != nil {
		return "status", strings.ToLower(m[1]), true
	}
	return "", "", false
}

// markAsUpdate interprets the value side of a "mark <target> as <value>"
// phrase. "mark it as high priority" and "mark it as urgent" name a priority;
// everything else is a status change.
func markAsUpdate(raw string) (field, value string) {
	value = strings.TrimSpace(raw)
	if m := priorityRe.FindStringSubmatch(value); m != nil {
		return "priority", strings.ToLower(firstGroup(m[1:]))
	}
	if m := barePriorityRe.FindStringSubmatch(value); m != nil && strings.EqualFold(value, m[1]) {
		return "priority", strings.ToLower(m[1])
	}
	return "status", value
}

// classifyQuestion buckets an interrogative input into one of the read-only
// query kinds the dispatcher can answer.
func classifyQuestion(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "how many"):
		return QuestionCount
	case strings.Contains(t, "next"):
		return QuestionNextTask
	case strings.Contains(t, "how long") || strings.Contains(t, "time left") ||
		strings.Contains(t, "remaining") || strings.Contains(t, "how much time"):
		return QuestionTimeRemaining
	case strings.Contains(t, "progress") || strings.Contains(t, "week"):
		return QuestionWeeklyProgress
	default:
		return QuestionSummary
	}
}

func quotedText(text string) (string, bool) {
	m := quotedRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return firstGroup(m[1:]), true
}

// trimTitle cuts trailing modifier clauses (dates, times, durations,
// priority phrases, goal links) off a candidate task title.
func trimTitle(raw string) string {
	title := strings.TrimSpace(raw)
	cut := len(title)
	for _, re := range titleCutRes {
		if loc := re.FindStringIndex(title); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	return strings.TrimSpace(title[:cut])
}

// cleanTarget tidies a free-text reference: strips articles, a trailing
// "task" noun, and surrounding quotes.
func cleanTarget(raw string) string {
	target := strings.TrimSpace(raw)
	target = strings.Trim(target, `"'`)
	target = trailingTaskRe.ReplaceAllString(target, "")
	target = strings.TrimPrefix(target, "the ")
	return strings.TrimSpace(target)
}

func durationMinutes(amount, unit string) int {
	n, err := strconv.Atoi(amount)
	if err != nil {
		return 0
	}
	if strings.HasPrefix(strings.ToLower(unit), "h") {
		return n * 60
	}
	return n
}

// firstGroup returns the first non-empty capture group.
func firstGroup(groups []string) string {
	for _, g := range groups {
		if g != "" {
			return strings.TrimSpace(g)
		}
	}
	return ""
}

// removeSpan blanks the first case-insensitive occurrence of span in text.
func removeSpan(text, span string) string {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, strings.ToLower(span))
	if idx < 0 {
		return text
	}
	return text[:idx] + text[idx+len(span):]
}
