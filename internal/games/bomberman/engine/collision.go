package engine

import "github.com/vovakirdan/tui-bomber/internal/core"

// Body is the world-space box of a mover. Box is the full sprite tile,
// Hitbox is the box shrunk by Inset on every side.
type Body struct {
	X, Y  Fixed
	Size  Fixed
	Inset Fixed
}

// Box returns the sprite box.
func (b Body) Box() core.Rect {
	return core.NewRect(int(b.X), int(b.Y), int(b.Size), int(b.Size))
}

// Hitbox returns the collision box.
func (b Body) Hitbox() core.Rect {
	return b.Box().Inset(int(b.Inset), int(b.Inset))
}

// Centre returns the hitbox centre.
func (b Body) Centre() (Fixed, Fixed) {
	x, y := b.Hitbox().Center()
	return Fixed(x), Fixed(y)
}

// SolidFunc decides, per mover, whether a cell blocks it.
type SolidFunc func(Cell) bool

// blockedByDefault is the predicate for movers without abilities.
func blockedByDefault(c Cell) bool {
	return !c.Passable()
}

// Resolver maps world positions to grid cells and moves bodies against the
// grid.
type Resolver struct {
	grid    *Grid
	tile    Fixed
	yOffset Fixed
}

// NewResolver creates a resolver over g.
func NewResolver(g *Grid, tile, yOffset Fixed) Resolver {
	return Resolver{grid: g, tile: tile, yOffset: yOffset}
}

// TileBox returns the world box of a grid cell.
func (r Resolver) TileBox(c Coord) core.Rect {
	return core.NewRect(int(Fixed(c.Col)*r.tile), int(Fixed(c.Row)*r.tile+r.yOffset), int(r.tile), int(r.tile))
}

// TileOrigin returns the top-left world position of a cell.
func (r Resolver) TileOrigin(c Coord) (Fixed, Fixed) {
	return Fixed(c.Col) * r.tile, Fixed(c.Row)*r.tile + r.yOffset
}

// CellOf returns the cell containing a world point.
func (r Resolver) CellOf(x, y Fixed) Coord {
	return Coord{Row: floorDiv(y-r.yOffset, r.tile), Col: floorDiv(x, r.tile)}
}

// Aligned reports whether a top-left position sits exactly on the lattice.
func (r Resolver) Aligned(x, y Fixed) (alignedX, alignedY bool) {
	return x%r.tile == 0, (y-r.yOffset)%r.tile == 0
}

// Overlaps reports whether box overlaps any cell solid to the mover.
func (r Resolver) Overlaps(box core.Rect, solid SolidFunc) bool {
	return r.collides(core.Rect{}, box, solid, false)
}

// collides tests box against the solid cells it covers. With skipPrev set,
// cells the mover already overlapped before the step do not count, so a
// mover caught inside a bomb that turned solid can walk out.
func (r Resolver) collides(prev, box core.Rect, solid SolidFunc, skipPrev bool) bool {
	lo := r.CellOf(Fixed(box.X), Fixed(box.Y))
	hi := r.CellOf(Fixed(box.Right()-1), Fixed(box.Bottom()-1))
	for row := lo.Row; row <= hi.Row; row++ {
		for col := lo.Col; col <= hi.Col; col++ {
			c := Coord{Row: row, Col: col}
			if !solid(r.grid.Occupant(c)) {
				continue
			}
			tb := r.TileBox(c)
			if !tb.Intersects(box) {
				continue
			}
			if skipPrev && tb.Intersects(prev) {
				continue
			}
			return true
		}
	}
	return false
}

// Move applies dx then dy, reverting each axis whose step runs the hitbox
// into a solid cell. A body blocked on one axis still slides along the other.
func (r Resolver) Move(b *Body, dx, dy Fixed, solid SolidFunc) (movedX, movedY bool) {
	if dx != 0 {
		prev := b.Hitbox()
		b.X += dx
		if r.collides(prev, b.Hitbox(), solid, true) {
			b.X -= dx
		} else {
			movedX = true
		}
	}
	if dy != 0 {
		prev := b.Hitbox()
		b.Y += dy
		if r.collides(prev, b.Hitbox(), solid, true) {
			b.Y -= dy
		} else {
			movedY = true
		}
	}
	return movedX, movedY
}

// Blocked reports whether a step of (dx, dy) would be reverted.
func (r Resolver) Blocked(b Body, dx, dy Fixed, solid SolidFunc) bool {
	prev := b.Hitbox()
	b.X += dx
	b.Y += dy
	return r.collides(prev, b.Hitbox(), solid, true)
}
