package theme

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	col, err := ParseColor("#FF8000")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if col != (color.RGBA{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}) {
		t.Fatalf("unexpected color %v", col)
	}

	col, err = ParseColor("#00000080")
	if err != nil {
		t.Fatalf("ParseColor with alpha: %v", err)
	}
	if col.A != 0x80 {
		t.Fatalf("expected alpha 0x80, got %v", col.A)
	}

	if _, err := ParseColor("red"); err == nil {
		t.Fatalf("expected error without # prefix")
	}
	if _, err := ParseColor("#FFF"); err == nil {
		t.Fatalf("expected error for short hex")
	}
}

func TestParseTheme(t *testing.T) {
	input := `
# overlay colors
Name: Night
Dimming: #00000080
HelpText: #FF0000
UnknownKey: #123456
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "Night" {
		t.Fatalf("expected name Night, got %q", th.Name)
	}
	if th.Dimming.A != 0x80 {
		t.Fatalf("expected dimming alpha 0x80, got %v", th.Dimming.A)
	}
	if th.HelpText != (color.RGBA{R: 0xFF, A: 0xFF}) {
		t.Fatalf("unexpected help text color %v", th.HelpText)
	}
	// Unset keys keep their defaults.
	if th.HelpBorder != Default().HelpBorder {
		t.Fatalf("expected default help border")
	}
}

func TestSetFieldCaseInsensitive(t *testing.T) {
	th := Default()
	if err := SetField(th, "eraseroutlinedark", "#112233"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if th.EraserOutlineDark != (color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF}) {
		t.Fatalf("unexpected color %v", th.EraserOutlineDark)
	}
}

func TestSetFieldRejectsBadColor(t *testing.T) {
	if err := SetField(Default(), "Dimming", "nope"); err == nil {
		t.Fatalf("expected error for malformed color")
	}
}
