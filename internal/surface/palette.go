package surface

import "image/color"

// PaletteColor is one selectable drawing color with its display name.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

// The palette is fixed: the nine entries line up with the 1-9 selection
// keys and nothing mutates them after init.
var (
	palette = []color.RGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 0, 255},
		{0, 255, 255, 255},
		{255, 0, 255, 255},
		{255, 128, 0, 255},
		{0, 0, 0, 255},
		{255, 255, 255, 255},
	}
	paletteNames = []string{
		"Red",
		"Lime",
		"Blue",
		"Yellow",
		"Cyan",
		"Magenta",
		"Orange",
		"Black",
		"White",
	}
)

var widths = []int{1, 2, 4, 6, 8}

// Palette returns a copy of the available drawing colors.
func Palette() []color.RGBA {
	out := make([]color.RGBA, len(palette))
	copy(out, palette)
	return out
}

// PaletteColors returns palette entries annotated with their display names.
func PaletteColors() []PaletteColor {
	out := make([]PaletteColor, len(palette))
	for i := range palette {
		out[i] = PaletteColor{Name: paletteNames[i], Color: palette[i]}
	}
	return out
}

// ColorByName finds a palette color by its display name, case sensitive.
func ColorByName(name string) (color.RGBA, bool) {
	for i, n := range paletteNames {
		if n == name {
			return palette[i], true
		}
	}
	return color.RGBA{}, false
}

// ColorAt returns the palette color at idx, clamped to the valid range.
func ColorAt(idx int) color.RGBA {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}

// WidthOptions returns a copy of the available stroke widths.
func WidthOptions() []int {
	out := make([]int, len(widths))
	copy(out, widths)
	return out
}
