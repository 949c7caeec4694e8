package engine

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		text       string
		intent     IntentKind
		confidence float64
	}{
		{"add task Call mom tomorrow at 5pm", IntentAddTask, 0.85},
		{"remind me to water the plants", IntentAddTask, 0.85},
		{"i need to finish the report", IntentAddTask, 0.85},
		{"create a new task for groceries", IntentAddTask, 0.85},
		{"add groceries", IntentAddTask, 0.6},

		{"change team sync priority to critical", IntentModifyTask, 0.75},
		{"mark board meeting as completed", IntentModifyTask, 0.75},
		{"rename standup to daily sync", IntentModifyTask, 0.75},
		{"update the dentist appointment description to bring insurance card", IntentModifyTask, 0.75},

		{"delete the onboarding draft", IntentDeleteTask, 0.8},
		{"remove grocery run", IntentDeleteTask, 0.8},
		{"get rid of the old standup", IntentDeleteTask, 0.8},

		{"move dentist appointment to friday", IntentScheduleTask, 0.75},
		{"reschedule the review for tomorrow", IntentScheduleTask, 0.75},
		{"postpone the demo until monday", IntentScheduleTask, 0.75},

		{"create a goal to run a marathon", IntentCreateGoal, 0.8},
		{"make an objective to run 10k for the goal marathon", IntentCreateObjective, 0.8},
		{"build me a roadmap for learning piano", IntentCreateRoadmap, 0.85},
		{"plan a strategy for my fitness journey", IntentCreateRoadmap, 0.85},

		{"how many tasks do I have today?", IntentAskQuestion, 0.6},
		{"what's next", IntentAskQuestion, 0.6},
		{"show me my week", IntentAskQuestion, 0.6},
		{"busy today?", IntentAskQuestion, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			intent, confidence := Classify(tt.text)
			if intent != tt.intent {
				t.Errorf("Classify(%q) intent = %s, want %s", tt.text, intent, tt.intent)
			}
			if confidence != tt.confidence {
				t.Errorf("Classify(%q) confidence = %v, want %v", tt.text, confidence, tt.confidence)
			}
		})
	}
}

func TestClassifyNeverRefuses(t *testing.T) {
	for _, text := range []string{"", "   ", "xylophone quartz", "asdf jkl"} {
		intent, confidence := Classify(text)
		if intent != IntentAskQuestion {
			t.Errorf("Classify(%q) = %s, want ask_question fallback", text, intent)
		}
		if confidence != DefaultConfidence {
			t.Errorf("Classify(%q) confidence = %v, want %v", text, confidence, DefaultConfidence)
		}
	}
}

func TestClassifyRoadmapBeforeGoal(t *testing.T) {
	// "create a roadmap for my goal" contains goal language but must land on
	// the broader roadmap rule.
	intent, _ := Classify("create a roadmap for my fitness goal")
	if intent != IntentCreateRoadmap {
		t.Errorf("intent = %s, want %s", intent, IntentCreateRoadmap)
	}
}

func TestClassifyFallbackNeverAutoExecutes(t *testing.T) {
	_, confidence := Classify("gibberish input nothing matches")
	cmd := Command{Confidence: confidence}
	if cmd.AutoExecutable() {
		t.Errorf("fallback confidence %v must not clear the auto-execute gate", confidence)
	}
}
