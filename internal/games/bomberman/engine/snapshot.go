package engine

import "time"

// Snapshot is a comparable summary of the world, used to check that two
// runs from the same seed and inputs stay identical.
type Snapshot struct {
	Stage    int
	Phase    Phase
	Score    int
	Lives    int
	TimeLeft time.Duration
	Grid     string
	Player   BodySnapshot
	Enemies  []BodySnapshot
	Bombs    []Coord
	Segments []Coord
}

// BodySnapshot is a mover's position and facing.
type BodySnapshot struct {
	X, Y   Fixed
	Facing Direction
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Stage:    w.stage,
		Phase:    w.phase,
		Score:    w.score,
		Lives:    w.lives,
		TimeLeft: w.timeLeft,
		Grid:     w.grid.String(),
		Player:   BodySnapshot{X: w.player.Body.X, Y: w.player.Body.Y, Facing: w.player.Facing},
	}
	for _, e := range w.enemies {
		s.Enemies = append(s.Enemies, BodySnapshot{X: e.Body.X, Y: e.Body.Y, Facing: e.Facing})
	}
	for _, b := range w.bombs {
		s.Bombs = append(s.Bombs, b.At)
	}
	for _, seg := range w.segments {
		s.Segments = append(s.Segments, seg.Pos)
	}
	return s
}
