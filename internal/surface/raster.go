package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/example/glasspen/internal/element"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawStroke(img *image.RGBA, pts []image.Point, col color.Color, thick int) {
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		setThickPixel(img, pts[0].X, pts[0].Y, thick, col)
		return
	}
	for i := 1; i < len(pts); i++ {
		drawLine(img, pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, col, thick)
	}
}

func drawRectOutline(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	rect = rect.Canon()
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	drawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

func drawEllipseInRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	rect = rect.Canon()
	cx := (rect.Min.X + rect.Max.X) / 2
	cy := (rect.Min.Y + rect.Max.Y) / 2
	rx := rect.Dx() / 2
	ry := rect.Dy() / 2
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(float64(rx*rx+ry*ry))))
	if steps < 8 {
		steps = 8
	}
	var prevX, prevY int
	for i := 0; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Cos(angle)*float64(rx))
		y := cy + int(math.Sin(angle)*float64(ry))
		if i > 0 {
			drawLine(img, prevX, prevY, x, y, col, thick)
		} else {
			setThickPixel(img, x, y, thick, col)
		}
		prevX, prevY = x, y
	}
}

// drawArrow draws the shaft up to the head's base and a filled triangular
// head whose size scales with the stroke thickness.
func drawArrow(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	headLen := float64(element.ArrowHeadLength(thick))
	headW := float64(element.ArrowHeadWidth(thick))

	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		setThickPixel(img, x0, y0, thick, col)
		return
	}
	ux := dx / dist
	uy := dy / dist

	bx := float64(x1) - ux*headLen
	by := float64(y1) - uy*headLen
	drawLine(img, x0, y0, int(bx), int(by), col, thick)

	// Perpendicular half-width offsets for the two wing points.
	wx := -uy * headW / 2
	wy := ux * headW / 2
	w1 := image.Pt(int(bx+wx), int(by+wy))
	w2 := image.Pt(int(bx-wx), int(by-wy))
	fillTriangle(img, image.Pt(x1, y1), w1, w2, col)
}

// fillTriangle rasterizes the triangle by sweeping lines from the apex to
// points interpolated along the opposite edge.
func fillTriangle(img *image.RGBA, apex, b, c image.Point, col color.Color) {
	steps := int(math.Hypot(float64(c.X-b.X), float64(c.Y-b.Y)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := b.X + int(t*float64(c.X-b.X))
		y := b.Y + int(t*float64(c.Y-b.Y))
		drawLine(img, apex.X, apex.Y, x, y, col, 1)
	}
}
