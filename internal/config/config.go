package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/glasspen/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Mode       bool
	Clear      bool
	Screenshot bool
	Tool       bool
}

// Drawing holds the annotation style settings.
type Drawing struct {
	Color        string
	Thickness    int
	ThicknessMin int
	ThicknessMax int
	EraserSize   int
}

// Config holds the application configuration.
type Config struct {
	Hotkey  string // key combination, e.g. "ctrl+shift+d"
	Lock    bool   // lock mode toggles drawing; hold mode keeps it while held
	Theme   string
	SaveDir string
	Drawing Drawing
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Hotkey: "ctrl+shift+d",
		Lock:   true,
		Drawing: Drawing{
			Color:        "Red",
			Thickness:    3,
			ThicknessMin: 1,
			ThicknessMax: 16,
			EraserSize:   20,
		},
		Notify: Notify{
			Mode:       true,
			Clear:      false,
			Screenshot: true,
			Tool:       false,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ClampThickness forces v into the configured thickness bounds.
func (c *Config) ClampThickness(v int) int {
	min := c.Drawing.ThicknessMin
	if min < 1 {
		min = 1
	}
	max := c.Drawing.ThicknessMax
	if max < min {
		max = min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Hotkey != "" {
		fmt.Fprintf(&sb, "hotkey = %s\n", c.Hotkey)
	}
	mode := "hold"
	if c.Lock {
		mode = "lock"
	}
	fmt.Fprintf(&sb, "mode = %s\n", mode)
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[drawing]\n")
	fmt.Fprintf(&sb, "color = %s\n", c.Drawing.Color)
	fmt.Fprintf(&sb, "thickness = %d\n", c.Drawing.Thickness)
	fmt.Fprintf(&sb, "thickness_min = %d\n", c.Drawing.ThicknessMin)
	fmt.Fprintf(&sb, "thickness_max = %d\n", c.Drawing.ThicknessMax)
	fmt.Fprintf(&sb, "eraser_size = %d\n", c.Drawing.EraserSize)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "mode = %v\n", c.Notify.Mode)
	fmt.Fprintf(&sb, "clear = %v\n", c.Notify.Clear)
	fmt.Fprintf(&sb, "screenshot = %v\n", c.Notify.Screenshot)
	fmt.Fprintf(&sb, "tool = %v\n", c.Notify.Tool)
	sb.WriteString("\n")

	// Themes sections, sorted for deterministic output.
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Dimming: %s\n", toHex(t.Dimming))
		fmt.Fprintf(&sb, "HelpBackground: %s\n", toHex(t.HelpBackground))
		fmt.Fprintf(&sb, "HelpBorder: %s\n", toHex(t.HelpBorder))
		fmt.Fprintf(&sb, "HelpText: %s\n", toHex(t.HelpText))
		fmt.Fprintf(&sb, "EraserOutlineLight: %s\n", toHex(t.EraserOutlineLight))
		fmt.Fprintf(&sb, "EraserOutlineDark: %s\n", toHex(t.EraserOutlineDark))
		sb.WriteString("\n")
	}

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
