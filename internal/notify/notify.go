// Package notify sends transient desktop notifications for drawing-mode
// life cycle events.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/glasspen/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventMode emits a notification when drawing mode toggles.
	EventMode Event = "mode"
	// EventClear emits a notification when all annotations are cleared.
	EventClear Event = "clear"
	// EventScreenshot emits a notification when a screenshot is saved.
	EventScreenshot Event = "screenshot"
	// EventTool emits a notification when the active drawing tool changes.
	EventTool Event = "tool"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Glasspen",
		Events: map[Event]EventPreference{
			EventMode:       {Template: "Drawing mode %s"},
			EventClear:      {Template: "Annotations cleared%s"},
			EventScreenshot: {Template: "Saved %s"},
			EventTool:       {Template: "Tool: %s"},
		},
	}
}

// LoadPreferences reads configuration from environment variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("GLASSPEN_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("GLASSPEN_NOTIFY_MODE_TEXT", EventMode)
	apply("GLASSPEN_NOTIFY_CLEAR_TEXT", EventClear)
	apply("GLASSPEN_NOTIFY_SCREENSHOT_TEXT", EventScreenshot)
	apply("GLASSPEN_NOTIFY_TOOL_TEXT", EventTool)
	return prefs
}

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Mode announces drawing mode turning on or off.
func (n *Notifier) Mode(active bool) {
	detail := "off"
	if active {
		detail = "on"
	}
	n.dispatch(EventMode, detail, platform.Options{})
}

// Tool announces the newly selected drawing tool.
func (n *Notifier) Tool(name string) {
	n.dispatch(EventTool, name, platform.Options{})
}

// Clear announces that all annotations were removed.
func (n *Notifier) Clear() {
	n.dispatch(EventClear, "", platform.Options{})
}

// Screenshot announces a saved screenshot, using the file as the
// notification icon when it is readable.
func (n *Notifier) Screenshot(path string) {
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventScreenshot, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil {
		return false
	}
	if n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := platform.Notify(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func (n *Notifier) template(event Event) string {
	if n == nil {
		return ""
	}
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}
