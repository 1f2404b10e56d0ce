package tools

import (
	"image"

	"github.com/example/glasspen/internal/element"
)

// hitElement reports whether el intersects the eraser region. Strokes are
// tested vertex by vertex, lines and arrows by exact segment intersection
// with the region, and the remaining kinds by bounding-box overlap.
func hitElement(el *element.Element, region image.Rectangle) bool {
	switch el.Kind {
	case element.KindStroke:
		for _, p := range el.Points {
			if p.In(region) {
				return true
			}
		}
		return false
	case element.KindLine, element.KindArrow:
		return hitSegment(el.Start, el.End, region)
	default:
		return el.Bounds().Overlaps(region)
	}
}

// hitSegment reports whether the segment a-b touches the region: either an
// endpoint lies inside it, or the segment crosses one of its four edges.
func hitSegment(a, b image.Point, region image.Rectangle) bool {
	if a.In(region) || b.In(region) {
		return true
	}
	x0, y0 := region.Min.X, region.Min.Y
	x1, y1 := region.Max.X-1, region.Max.Y-1
	corners := [4]image.Point{
		{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1},
	}
	for i := range corners {
		if segmentsIntersect(a, b, corners[i], corners[(i+1)%4]) {
			return true
		}
	}
	return false
}

// segmentsIntersect solves the parametric form of the two segments. A
// denominator near zero means parallel or collinear; those are treated as
// misses, which the endpoint containment check above already compensates
// for in the cases the eraser cares about.
func segmentsIntersect(p1, p2, p3, p4 image.Point) bool {
	d1x := float64(p2.X - p1.X)
	d1y := float64(p2.Y - p1.Y)
	d2x := float64(p4.X - p3.X)
	d2y := float64(p4.Y - p3.Y)

	den := d1x*d2y - d1y*d2x
	if den < 1e-9 && den > -1e-9 {
		return false
	}

	sx := float64(p3.X - p1.X)
	sy := float64(p3.Y - p1.Y)
	t := (sx*d2y - sy*d2x) / den
	u := (sx*d1y - sy*d1x) / den
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}
