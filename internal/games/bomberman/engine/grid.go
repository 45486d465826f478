package engine

import (
	"fmt"
	"strings"
)

// Coord is a grid index.
type Coord struct {
	Row, Col int
}

// Step returns the neighbouring coordinate n cells away in dir.
func (c Coord) Step(dir Direction, n int) Coord {
	dRow, dCol := dir.Delta()
	return Coord{Row: c.Row + dRow*n, Col: c.Col + dCol*n}
}

// Chebyshev returns the king-move distance between two coordinates.
func (c Coord) Chebyshev(o Coord) int {
	return max(absInt(c.Row-o.Row), absInt(c.Col-o.Col))
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Kind tags what occupies a cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindHardWall
	KindSoftBlock
	KindBomb
	KindPowerUp
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindHardWall:
		return "hard_wall"
	case KindSoftBlock:
		return "soft_block"
	case KindBomb:
		return "bomb"
	case KindPowerUp:
		return "power_up"
	}
	return "unknown"
}

// Cell is the occupancy record of one grid position. Exactly one of the
// pointers is set, matching Kind; Empty and HardWall carry none.
type Cell struct {
	Kind    Kind
	Soft    *SoftBlock
	Bomb    *Bomb
	PowerUp *PowerUp
}

// EmptyCell is a free cell.
func EmptyCell() Cell { return Cell{} }

// HardWallCell is an indestructible wall.
func HardWallCell() Cell { return Cell{Kind: KindHardWall} }

// SoftBlockCell references a destructible block.
func SoftBlockCell(b *SoftBlock) Cell { return Cell{Kind: KindSoftBlock, Soft: b} }

// BombCell references a placed bomb.
func BombCell(b *Bomb) Cell { return Cell{Kind: KindBomb, Bomb: b} }

// PowerUpCell references a revealed power-up.
func PowerUpCell(p *PowerUp) Cell { return Cell{Kind: KindPowerUp, PowerUp: p} }

// Passable reports whether movers may enter the cell without special
// abilities.
func (c Cell) Passable() bool {
	switch c.Kind {
	case KindEmpty, KindPowerUp:
		return true
	case KindBomb:
		return c.Bomb != nil && c.Bomb.Passable()
	}
	return false
}

// Destructible reports whether a blast affects the occupant.
func (c Cell) Destructible() bool {
	switch c.Kind {
	case KindSoftBlock, KindBomb:
		return true
	case KindPowerUp:
		return c.PowerUp != nil && c.PowerUp.Kind != PowerExit
	}
	return false
}

// Grid is the fixed-size occupancy matrix. It is the only place cell
// occupancy is stored.
type Grid struct {
	rows, cols int
	cells      []Cell
	sealed     bool
}

// NewGrid creates a grid with every cell Empty.
func NewGrid(rows, cols int) *Grid {
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// CellAt returns the cell at (row, col).
func (g *Grid) CellAt(row, col int) (Cell, error) {
	if !g.InBounds(row, col) {
		return Cell{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	return g.cells[row*g.cols+col], nil
}

// SetCell writes the cell at (row, col). After Seal, permanent walls reject
// every write.
func (g *Grid) SetCell(row, col int, c Cell) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	if g.sealed && g.IsPermanent(row, col) {
		return fmt.Errorf("%w: (%d,%d)", ErrPermanentWall, row, col)
	}
	g.cells[row*g.cols+col] = c
	return nil
}

// IsTraversable is true iff the cell is Empty or its occupant is passable.
// Out-of-bounds cells are not traversable.
func (g *Grid) IsTraversable(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.cells[row*g.cols+col].Passable()
}

// Occupant returns the cell at c, treating anything outside the grid as
// hard wall.
func (g *Grid) Occupant(c Coord) Cell {
	if !g.InBounds(c.Row, c.Col) {
		return HardWallCell()
	}
	return g.cells[c.Row*g.cols+c.Col]
}

// IsPermanent reports whether (row, col) is on the border or the
// (even, even) lattice.
func (g *Grid) IsPermanent(row, col int) bool {
	if row == 0 || col == 0 || row == g.rows-1 || col == g.cols-1 {
		return true
	}
	return row%2 == 0 && col%2 == 0
}

// Seal freezes the permanent walls.
func (g *Grid) Seal() {
	g.sealed = true
}

// Count returns how many cells hold the given kind.
func (g *Grid) Count(k Kind) int {
	n := 0
	for _, c := range g.cells {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// String renders the grid as ASCII, one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.cols + 1) * g.rows)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			b.WriteByte(g.cells[r*g.cols+c].glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c Cell) glyph() byte {
	switch c.Kind {
	case KindHardWall:
		return '#'
	case KindSoftBlock:
		return '@'
	case KindBomb:
		return 'o'
	case KindPowerUp:
		return '+'
	}
	return '.'
}
