package engine

import (
	"math"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// blocksSight reports whether a cell hides whatever is behind it.
func blocksSight(c Cell) bool {
	switch c.Kind {
	case KindHardWall, KindSoftBlock, KindBomb:
		return true
	}
	return false
}

// lineOfSight reports whether the segment between the centres of two cells
// crosses no sight-blocking cell. Only cells inside the bounding box of the
// two endpoints are tested; the endpoints themselves never block.
func lineOfSight(g *Grid, res Resolver, from, to Coord) bool {
	fb, tb := res.TileBox(from), res.TileBox(to)
	ox, oy := fb.Center()
	ex, ey := tb.Center()

	for row := min(from.Row, to.Row); row <= max(from.Row, to.Row); row++ {
		for col := min(from.Col, to.Col); col <= max(from.Col, to.Col); col++ {
			c := Coord{Row: row, Col: col}
			if c == from || c == to || !blocksSight(g.Occupant(c)) {
				continue
			}
			if segmentHitsBox(float64(ox), float64(oy), float64(ex), float64(ey), res.TileBox(c)) {
				return false
			}
		}
	}
	return true
}

// segmentHitsBox is the slab test of the segment (ox,oy)-(ex,ey) against box.
// Touching the boundary counts as a hit.
func segmentHitsBox(ox, oy, ex, ey float64, box core.Rect) bool {
	minX, minY := float64(box.X), float64(box.Y)
	maxX, maxY := float64(box.Right()), float64(box.Bottom())
	dx, dy := ex-ox, ey-oy
	tMin, tMax := 0.0, 1.0

	if math.Abs(dx) < 1e-12 {
		if ox < minX || ox > maxX {
			return false
		}
	} else {
		t1, t2 := (minX-ox)/dx, (maxX-ox)/dx
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin, tMax = math.Max(tMin, t1), math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	if math.Abs(dy) < 1e-12 {
		if oy < minY || oy > maxY {
			return false
		}
	} else {
		t1, t2 := (minY-oy)/dy, (maxY-oy)/dy
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin, tMax = math.Max(tMin, t1), math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}
