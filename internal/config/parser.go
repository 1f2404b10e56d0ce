package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/glasspen/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
			if err != nil {
				err = fmt.Errorf("error in section [%s]: %w", currentSection, err)
			}
		case currentSection == "drawing":
			err = setDrawingField(&cfg.Drawing, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			return nil, err
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "hotkey":
		cfg.Hotkey = value
	case "mode":
		switch strings.ToLower(value) {
		case "lock":
			cfg.Lock = true
		case "hold":
			cfg.Lock = false
		default:
			return fmt.Errorf("error in root section: mode must be lock or hold, got %q", value)
		}
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setDrawingField(d *Drawing, key, value string) error {
	if strings.EqualFold(key, "color") {
		d.Color = value
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("error in section [drawing]: invalid number for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "thickness":
		d.Thickness = n
	case "thickness_min":
		d.ThicknessMin = n
	case "thickness_max":
		d.ThicknessMax = n
	case "eraser_size":
		d.EraserSize = n
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("error in section [notify]: invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "mode":
		n.Mode = b
	case "clear":
		n.Clear = b
	case "screenshot":
		n.Screenshot = b
	case "tool":
		n.Tool = b
	}
	return nil
}
