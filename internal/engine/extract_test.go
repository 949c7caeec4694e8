package engine

import "testing"

func TestExtractAddTask(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   "add task Call mom tomorrow at 5pm for 30 minutes",
		Intent: IntentAddTask,
	})

	if got := bag.Text(SlotTitle); got != "Call mom" {
		t.Errorf("title = %q, want %q", got, "Call mom")
	}
	if got := bag.Text(SlotDate); got != "tomorrow" {
		t.Errorf("date = %q, want %q", got, "tomorrow")
	}
	if got := bag.Text(SlotTime); got != "5pm" {
		t.Errorf("time = %q, want %q", got, "5pm")
	}
	v, ok := bag.Get(SlotDuration)
	if !ok {
		t.Fatal("duration not extracted")
	}
	if n, _ := v.AsNumber(); n != 30 {
		t.Errorf("duration = %d, want 30", n)
	}
}

func TestExtractAddTaskQuotedTitle(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   `add task "Quarterly Review: phase 2" on friday`,
		Intent: IntentAddTask,
	})
	if got := bag.Text(SlotTitle); got != "Quarterly Review: phase 2" {
		t.Errorf("title = %q, want quoted text verbatim", got)
	}
	if got := bag.Text(SlotDate); got != "friday" {
		t.Errorf("date = %q, want friday", got)
	}
}

func TestExtractAddTaskHourDuration(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   "remind me to prep slides for 2 hours",
		Intent: IntentAddTask,
	})
	v, ok := bag.Get(SlotDuration)
	if !ok {
		t.Fatal("duration not extracted")
	}
	if n, _ := v.AsNumber(); n != 120 {
		t.Errorf("duration = %d, want 120 (hours convert to minutes)", n)
	}
	if got := bag.Text(SlotTitle); got != "prep slides" {
		t.Errorf("title = %q, want %q", got, "prep slides")
	}
}

func TestExtractAddTaskWithGoalLink(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   "add task long run tomorrow for the goal marathon",
		Intent: IntentAddTask,
	})
	if got := bag.Text(SlotTitle); got != "long run" {
		t.Errorf("title = %q, want %q", got, "long run")
	}
	if got := bag.Text(SlotGoal); got != "marathon" {
		t.Errorf("goal = %q, want %q", got, "marathon")
	}
}

func TestExtractModifyTask(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   "change team sync priority to critical",
		Intent: IntentModifyTask,
	})
	if got := bag.Text(SlotTarget); got != "team sync" {
		t.Errorf("target = %q, want %q", got, "team sync")
	}
	if got := bag.Text(SlotField); got != "priority" {
		t.Errorf("field = %q, want priority", got)
	}
	if got := bag.Text(SlotNewValue); got != "critical" {
		t.Errorf("new value = %q, want critical", got)
	}
}

func TestExtractMarkAs(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   "mark board meeting as completed",
		Intent: IntentModifyTask,
	})
	if got := bag.Text(SlotTarget); got != "board meeting" {
		t.Errorf("target = %q, want %q", got, "board meeting")
	}
	if got := bag.Text(SlotField); got != "status" {
		t.Errorf("field = %q, want status", got)
	}
	if got := bag.Text(SlotNewValue); got != "completed" {
		t.Errorf("new value = %q, want completed", got)
	}
}

func TestExtractMarkAsPriority(t *testing.T) {
	cases := []struct {
		text   string
		target string
		value  string
	}{
		{"mark project review as high priority", "project review", "high"},
		{"mark the launch checklist as urgent", "launch checklist", "urgent"},
	}
	for _, tc := range cases {
		bag := Extract(ExtractInput{Text: tc.text, Intent: IntentModifyTask})
		if got := bag.Text(SlotTarget); got != tc.target {
			t.Errorf("%q: target = %q, want %q", tc.text, got, tc.target)
		}
		if got := bag.Text(SlotField); got != "priority" {
			t.Errorf("%q: field = %q, want priority", tc.text, got)
		}
		if got := bag.Text(SlotNewValue); got != tc.value {
			t.Errorf("%q: new value = %q, want %q", tc.text, got, tc.value)
		}
	}
}

func TestExtractRename(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   "rename the standup to daily sync",
		Intent: IntentModifyTask,
	})
	if got := bag.Text(SlotTarget); got != "standup" {
		t.Errorf("target = %q, want standup", got)
	}
	if got := bag.Text(SlotField); got != "title" {
		t.Errorf("field = %q, want title", got)
	}
	if got := bag.Text(SlotNewValue); got != "daily sync" {
		t.Errorf("new value = %q, want %q", got, "daily sync")
	}
}

func TestExtractDeleteTask(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   "delete the onboarding draft task",
		Intent: IntentDeleteTask,
	})
	if got := bag.Text(SlotTarget); got != "onboarding draft" {
		t.Errorf("target = %q, want %q", got, "onboarding draft")
	}
}

func TestExtractScheduleTask(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   "move dentist appointment to friday at 9am",
		Intent: IntentScheduleTask,
	})
	if got := bag.Text(SlotTarget); got != "dentist appointment" {
		t.Errorf("target = %q, want %q", got, "dentist appointment")
	}
	if got := bag.Text(SlotDate); got != "friday" {
		t.Errorf("date = %q, want friday", got)
	}
	if got := bag.Text(SlotTime); got != "9am" {
		t.Errorf("time = %q, want 9am", got)
	}
}

func TestExtractCreateGoal(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   "create a goal to run a marathon",
		Intent: IntentCreateGoal,
	})
	if got := bag.Text(SlotTitle); got != "run a marathon" {
		t.Errorf("title = %q, want %q", got, "run a marathon")
	}
}

func TestExtractCreateObjective(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   `add objective "Run 10k" under the goal marathon`,
		Intent: IntentCreateObjective,
	})
	if got := bag.Text(SlotTitle); got != "Run 10k" {
		t.Errorf("title = %q, want %q", got, "Run 10k")
	}
	if got := bag.Text(SlotGoal); got != "marathon" {
		t.Errorf("goal = %q, want marathon", got)
	}
}

func TestExtractQuestionKinds(t *testing.T) {
	tests := []struct {
		text string
		kind string
	}{
		{"how many tasks do I have today?", QuestionCount},
		{"what's my next task?", QuestionNextTask},
		{"how much time do I have remaining?", QuestionTimeRemaining},
		{"how is my progress this week?", QuestionWeeklyProgress},
		{"what's on my plate?", QuestionSummary},
	}
	for _, tt := range tests {
		bag := Extract(ExtractInput{Text: tt.text, Intent: IntentAskQuestion})
		if got := bag.Text(SlotQuestionType); got != tt.kind {
			t.Errorf("question kind for %q = %q, want %q", tt.text, got, tt.kind)
		}
	}
}

func TestExtractProvidedFieldsWin(t *testing.T) {
	bag := Extract(ExtractInput{
		Text:   "add task Call mom tomorrow",
		Intent: IntentAddTask,
		Provided: map[string]string{
			"date":     "2026-12-24",
			"duration": "45",
		},
	})
	if got := bag.Text(SlotDate); got != "2026-12-24" {
		t.Errorf("date = %q, want provided value to win over 'tomorrow'", got)
	}
	v, _ := bag.Get(SlotDuration)
	if n, _ := v.AsNumber(); n != 45 {
		t.Errorf("duration = %d, want 45 from provided", n)
	}
	if got := bag.Text(SlotTitle); got != "Call mom" {
		t.Errorf("title = %q, want %q", got, "Call mom")
	}
}

func TestExtractFieldUpdateFallback(t *testing.T) {
	field, value, ok := extractFieldUpdate("set the launch checklist status to done")
	if !ok {
		t.Fatal("no field update recovered")
	}
	if field != "status" || value != "done" {
		t.Errorf("got (%s, %s), want (status, done)", field, value)
	}
}

func TestExtractEmptyBagOnBareModify(t *testing.T) {
	// "update the report" names a target but no field/value pair; the
	// dispatcher uses the missing pair to ask for clarification.
	bag := Extract(ExtractInput{Text: "update the report", Intent: IntentModifyTask})
	if got := bag.Text(SlotTarget); got != "report" {
		t.Errorf("target = %q, want report", got)
	}
	if bag.Has(SlotField) {
		t.Errorf("field should be absent, got %q", bag.Text(SlotField))
	}
}
