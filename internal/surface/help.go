package surface

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/glasspen/internal/render"
	"github.com/example/glasspen/internal/theme"
)

var helpLines = []string{
	"Glasspen",
	"",
	"P  pen            L  line",
	"R  rectangle      C  circle",
	"A  arrow          T  text",
	"E  eraser",
	"",
	"1-9     stroke color",
	"+/-     stroke thickness",
	"Ctrl+Z  undo last annotation",
	"Ctrl+D  clear all annotations",
	"Ctrl+S  save screenshot",
	"F1      toggle this help",
	"Esc     leave drawing mode",
}

var (
	helpPanel    *image.RGBA
	helpPanelFor *theme.Theme
)

// renderHelp composites the shortcut panel, centered in dst. The panel has
// no dynamic content, so it is rendered once per theme and cached.
func renderHelp(dst *image.RGBA, th *theme.Theme) {
	if helpPanel == nil || helpPanelFor != th {
		helpPanel = buildHelpPanel(th)
		helpPanelFor = th
	}
	b := dst.Bounds()
	p := helpPanel.Bounds()
	off := image.Pt(
		b.Min.X+(b.Dx()-p.Dx())/2,
		b.Min.Y+(b.Dy()-p.Dy())/2,
	)
	draw.Draw(dst, p.Add(off), helpPanel, p.Min, draw.Over)
}

func buildHelpPanel(th *theme.Theme) *image.RGBA {
	const pad = 16
	const lineHeight = 16

	meas := &font.Drawer{Face: basicfont.Face7x13}
	width := 0
	for _, line := range helpLines {
		if w := meas.MeasureString(line).Ceil(); w > width {
			width = w
		}
	}

	panel := image.NewRGBA(image.Rect(0, 0, width+2*pad, len(helpLines)*lineHeight+2*pad))
	draw.Draw(panel, panel.Bounds(), &image.Uniform{th.HelpBackground}, image.Point{}, draw.Src)
	drawRectOutline(panel, panel.Bounds(), th.HelpBorder, 1)

	y := pad + 12
	for _, line := range helpLines {
		d := &font.Drawer{Dst: panel, Src: image.NewUniform(th.HelpText), Face: basicfont.Face7x13, Dot: fixed.P(pad, y)}
		d.DrawString(line)
		y += lineHeight
	}

	res := render.ApplyShadow(panel, render.DefaultShadowOptions())
	return res.Image
}
