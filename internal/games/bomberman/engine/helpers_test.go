package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

func newTestWorld(t *testing.T, r *Rules) *World {
	t.Helper()
	w, err := NewWorld(r, 1, WithStrictInvariants())
	require.NoError(t, err)
	return w
}

// openLayout is a stage with only the border walls.
func openLayout(r *Rules, spawn Coord) *Layout {
	l := NewLayout(r.Grid.Rows, r.Grid.Cols, spawn)
	l.Stage = r.Stage.Start
	return l
}

func load(t *testing.T, w *World, l *Layout) {
	t.Helper()
	require.NoError(t, w.Load(l))
	w.Tick(0, Intent{})
}

// clock feeds monotonic readings to a world.
type clock struct {
	now time.Duration
}

func (c *clock) tick(w *World, d time.Duration, in Intent) TickResult {
	c.now += d
	return w.Tick(c.now, in)
}

func teleport(w *World, at Coord) {
	w.player.Body.X, w.player.Body.Y = w.res.TileOrigin(at)
}

func addBomb(t *testing.T, w *World, at Coord, fuse int) *Bomb {
	t.Helper()
	b := newBomb(w.id(), at, w.player, w.rules.Bomb)
	b.fuse = fuse
	require.NoError(t, w.grid.SetCell(at.Row, at.Col, BombCell(b)))
	w.bombs = append(w.bombs, b)
	w.player.hold(b)
	return b
}

func revealedPowerUp(t *testing.T, l *Layout, at Coord, kind PowerUpKind) *PowerUp {
	t.Helper()
	p := &PowerUp{Kind: kind, At: at, revealed: true}
	require.NoError(t, l.Grid.SetCell(at.Row, at.Col, PowerUpCell(p)))
	l.PowerUps = append(l.PowerUps, p)
	return p
}

func eventsOf(events []Event, kind EventKind) []Event {
	var out []Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func segmentsAt(segs []*Segment) map[Coord]*Segment {
	m := make(map[Coord]*Segment, len(segs))
	for _, s := range segs {
		if _, ok := m[s.Pos]; !ok {
			m[s.Pos] = s
		}
	}
	return m
}
