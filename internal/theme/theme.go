package theme

import (
	"image/color"
)

// Theme defines the color palette for the overlay chrome: the screen
// dimming layer, the help panel, and the eraser cursor outline. Annotation
// colors come from the drawing palette, not the theme.
type Theme struct {
	Name string

	// Dimming is drawn over the captured screen while drawing mode is
	// active, so annotations stand out.
	Dimming color.RGBA

	// Help panel
	HelpBackground color.RGBA
	HelpBorder     color.RGBA
	HelpText       color.RGBA

	// Eraser cursor, doubled so it stays visible on any background.
	EraserOutlineLight color.RGBA
	EraserOutlineDark  color.RGBA
}

// Default returns the hardcoded default theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:               "Default",
		Dimming:            color.RGBA{0, 0, 0, 48},
		HelpBackground:     color.RGBA{245, 245, 245, 240},
		HelpBorder:         color.RGBA{60, 60, 60, 255},
		HelpText:           color.RGBA{0, 0, 0, 255},
		EraserOutlineLight: color.RGBA{255, 255, 255, 255},
		EraserOutlineDark:  color.RGBA{0, 0, 0, 255},
	}
}
