package engine

import "github.com/zyedidia/generic/mapset"

// cellWrite is a deferred grid mutation. It applies only while the cell
// still holds what expect accepts.
type cellWrite struct {
	at     Coord
	cell   Cell
	expect func(Cell) bool
}

// commands buffers the mutations produced while entities are iterated.
// The World applies them in its commit phase.
type commands struct {
	segments []*Segment
	enemies  []*Enemy
	writes   []cellWrite
	exitHits mapset.Set[Coord]
}

func newCommands() *commands {
	return &commands{exitHits: mapset.New[Coord]()}
}

func (c *commands) addSegment(s *Segment) {
	c.segments = append(c.segments, s)
}

func (c *commands) spawn(e *Enemy) {
	c.enemies = append(c.enemies, e)
}

func (c *commands) write(at Coord, cell Cell, expect func(Cell) bool) {
	c.writes = append(c.writes, cellWrite{at: at, cell: cell, expect: expect})
}

func (c *commands) hitExit(at Coord) {
	c.exitHits.Put(at)
}

func (c *commands) reset() {
	c.segments = nil
	c.enemies = nil
	c.writes = nil
	c.exitHits = mapset.New[Coord]()
}

func holdsBomb(b *Bomb) func(Cell) bool {
	return func(c Cell) bool { return c.Kind == KindBomb && c.Bomb == b }
}

func holdsSoft(b *SoftBlock) func(Cell) bool {
	return func(c Cell) bool { return c.Kind == KindSoftBlock && c.Soft == b }
}

func holdsPowerUp(p *PowerUp) func(Cell) bool {
	return func(c Cell) bool { return c.Kind == KindPowerUp && c.PowerUp == p }
}
