package notify

import "testing"

func TestDefaultPreferencesCoverAllEvents(t *testing.T) {
	prefs := DefaultPreferences()
	for _, event := range []Event{EventMode, EventClear, EventScreenshot, EventTool} {
		pref, ok := prefs.Events[event]
		if !ok || pref.Template == "" {
			t.Errorf("event %s has no template", event)
		}
	}
}

func TestEnableGatesEvents(t *testing.T) {
	n := New(DefaultPreferences())
	if n.enabledFor(EventTool) {
		t.Error("events must start disabled")
	}
	n.Enable(EventTool, true)
	if !n.enabledFor(EventTool) {
		t.Error("Enable(true) did not take")
	}
	n.Enable(EventTool, false)
	if n.enabledFor(EventTool) {
		t.Error("Enable(false) did not take")
	}
}

func TestLoadPreferencesToolOverride(t *testing.T) {
	t.Setenv("GLASSPEN_NOTIFY_TOOL_TEXT", "Now drawing with %s")
	prefs := LoadPreferences()
	if got := prefs.Events[EventTool].Template; got != "Now drawing with %s" {
		t.Fatalf("tool template = %q", got)
	}
}
