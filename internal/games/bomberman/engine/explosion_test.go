package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

func TestBombDetonatesAfterFuse(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)

	l := openLayout(r, Coord{3, 2})
	block, err := l.AddSoftBlock(Coord{3, 4}, PowerNone)
	require.NoError(t, err)
	load(t, w, l)
	w.Player().FlamePass = true

	var c clock
	res := c.tick(w, 0, Intent{PlaceBomb: true})
	require.Len(t, eventsOf(res.Events, EventBombPlaced), 1)
	require.Len(t, w.Bombs(), 1)
	b := w.Bombs()[0]
	assert.Equal(t, Coord{3, 2}, b.At)
	assert.Equal(t, 2, b.Power)

	for i := 1; i < r.Bomb.Fuse; i++ {
		c.tick(w, r.Bomb.Frame, Intent{})
		require.Equal(t, BombArmed, b.State(), "tick %d", i)
		assert.Equal(t, r.Bomb.Fuse-i, b.Fuse())
	}
	res = c.tick(w, r.Bomb.Frame, Intent{})
	assert.Equal(t, BombRemoved, b.State())
	assert.Len(t, eventsOf(res.Events, EventBombDetonated), 1)
	assert.Empty(t, w.Bombs())
	assert.Equal(t, 0, w.Player().ActiveBombs())
	assert.Equal(t, KindEmpty, w.Grid().Occupant(Coord{3, 2}).Kind)

	segs := segmentsAt(w.Segments())
	expected := map[Coord]SegmentKind{
		{3, 2}: SegmentCentre,
		{2, 2}: SegmentMid, {1, 2}: SegmentEnd, // up
		{4, 2}: SegmentMid, {5, 2}: SegmentEnd, // down
		{3, 1}: SegmentEnd, // left, border behind
		{3, 3}: SegmentEnd, // right, soft block behind
	}
	require.Len(t, w.Segments(), len(expected))
	for at, kind := range expected {
		s, ok := segs[at]
		if assert.True(t, ok, "segment at %v", at) {
			assert.Equal(t, kind, s.Kind, "segment at %v", at)
		}
	}
	assert.NotContains(t, segs, Coord{3, 4})

	destroyed := eventsOf(res.Events, EventBlockDestroyed)
	require.Len(t, destroyed, 1)
	assert.Equal(t, Coord{3, 4}, destroyed[0].At)
	assert.True(t, block.Burning())
	assert.Equal(t, KindSoftBlock, w.Grid().Occupant(Coord{3, 4}).Kind, "burning block still blocks")

	c.tick(w, 250*time.Millisecond, Intent{})
	c.tick(w, 250*time.Millisecond, Intent{})
	assert.Equal(t, KindEmpty, w.Grid().Occupant(Coord{3, 4}).Kind)
	assert.Empty(t, w.Blocks())
	assert.Empty(t, w.Segments())
}

func TestBlastReach(t *testing.T) {
	centre := Coord{9, 9}
	tests := []struct {
		name     string
		power    int
		walls    []Coord
		blocks   []Coord
		expected map[Direction][]SegmentKind
	}{
		{
			name:  "open field",
			power: 2,
			expected: map[Direction][]SegmentKind{
				DirLeft:  {SegmentMid, SegmentEnd},
				DirRight: {SegmentMid, SegmentEnd},
				DirUp:    {SegmentMid, SegmentEnd},
				DirDown:  {SegmentMid, SegmentEnd},
			},
		},
		{
			name:  "power one",
			power: 1,
			expected: map[Direction][]SegmentKind{
				DirLeft:  {SegmentEnd},
				DirRight: {SegmentEnd},
				DirUp:    {SegmentEnd},
				DirDown:  {SegmentEnd},
			},
		},
		{
			name:   "walls and blocks shorten arms",
			power:  3,
			walls:  []Coord{{9, 11}, {8, 9}},
			blocks: []Coord{{9, 6}},
			expected: map[Direction][]SegmentKind{
				DirLeft:  {SegmentMid, SegmentEnd},
				DirRight: {SegmentEnd},
				DirUp:    nil,
				DirDown:  {SegmentMid, SegmentMid, SegmentEnd},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			r.Player.Power = tt.power
			w := newTestWorld(t, r)
			l := openLayout(r, centre)
			for _, at := range tt.walls {
				require.NoError(t, l.Grid.SetCell(at.Row, at.Col, HardWallCell()))
			}
			for _, at := range tt.blocks {
				_, err := l.AddSoftBlock(at, PowerNone)
				require.NoError(t, err)
			}
			load(t, w, l)
			w.Player().resetAttributes(r.Player)
			w.Player().FlamePass = true

			var c clock
			require.True(t, w.PlaceBomb())
			b := w.Bombs()[0]
			b.fuse = 1
			c.tick(w, r.Bomb.Frame, Intent{})
			require.Equal(t, BombRemoved, b.State())

			arms := map[Direction][]SegmentKind{}
			for _, s := range w.Segments() {
				if s.Kind == SegmentCentre {
					assert.Equal(t, centre, s.Pos)
					continue
				}
				arms[s.Dir] = append(arms[s.Dir], s.Kind)
			}
			for _, dir := range cardinals {
				assert.Equal(t, tt.expected[dir], arms[dir], "direction %s", dir)
				assert.LessOrEqual(t, len(arms[dir]), tt.power)
			}
		})
	}
}

func TestChainReactionSamePass(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	load(t, w, openLayout(r, Coord{9, 9}))
	w.Player().FlamePass = true
	w.Player().BombLimit = 3

	var c clock
	require.True(t, w.PlaceBomb())
	first := w.Bombs()[0]
	second := addBomb(t, w, Coord{9, 11}, 100)
	third := addBomb(t, w, Coord{11, 11}, 100)
	require.Equal(t, 3, w.Player().ActiveBombs())

	first.fuse = 1
	res := c.tick(w, r.Bomb.Frame, Intent{})

	assert.Equal(t, BombRemoved, first.State())
	assert.Equal(t, BombRemoved, second.State())
	assert.Equal(t, BombRemoved, third.State())
	assert.Len(t, eventsOf(res.Events, EventBombDetonated), 3)
	assert.Equal(t, 0, w.Player().ActiveBombs())
	assert.Empty(t, w.Bombs())

	segs := segmentsAt(w.Segments())
	assert.Contains(t, segs, Coord{9, 13}, "second bomb's right arm")
	assert.Contains(t, segs, Coord{13, 11}, "third bomb's lower arm")
	for _, at := range []Coord{{9, 9}, {9, 11}, {11, 11}} {
		assert.Equal(t, KindEmpty, w.Grid().Occupant(at).Kind)
	}
}

func TestDetonateIsIdempotent(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	load(t, w, openLayout(r, Coord{9, 9}))
	require.True(t, w.PlaceBomb())
	b := w.Bombs()[0]

	newBlast(w.grid, w.cmds, &w.events, w.rules).detonate(b)
	newBlast(w.grid, w.cmds, &w.events, w.rules).detonate(b)

	assert.Len(t, eventsOf(w.events.events, EventBombDetonated), 1)
	assert.Equal(t, 0, w.Player().ActiveBombs())
	assert.False(t, w.Player().release(b))

	w.commit()
	assert.Empty(t, w.Bombs())
}

func TestSoftBlockIgniteIsIdempotent(t *testing.T) {
	b := &SoftBlock{At: Coord{1, 1}}
	r := BlockRules{BurnFrames: 2, Frame: 10 * time.Millisecond}
	assert.True(t, b.Ignite(r))
	assert.False(t, b.Ignite(r))

	assert.False(t, b.advance(10*time.Millisecond))
	assert.True(t, b.advance(10*time.Millisecond))
	assert.False(t, b.advance(10*time.Millisecond))
}

func TestBlastRevealedPowerUps(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	l := openLayout(r, Coord{3, 2})
	special := revealedPowerUp(t, l, Coord{3, 4}, PowerFireUp)
	exit := revealedPowerUp(t, l, Coord{5, 2}, PowerExit)
	load(t, w, l)
	w.Player().FlamePass = true

	var c clock
	require.True(t, w.PlaceBomb())
	w.Bombs()[0].fuse = 1
	res := c.tick(w, r.Bomb.Frame, Intent{})

	lost := eventsOf(res.Events, EventPowerUpLost)
	require.Len(t, lost, 1)
	assert.Equal(t, PowerFireUp, lost[0].PowerUp)
	assert.True(t, special.Taken())
	assert.Equal(t, KindEmpty, w.Grid().Occupant(special.At).Kind)

	penalty := eventsOf(res.Events, EventExitPenalty)
	require.Len(t, penalty, 1)
	assert.Equal(t, exit.At, penalty[0].At)
	assert.Equal(t, KindPowerUp, w.Grid().Occupant(exit.At).Kind, "exit survives")
	assert.Same(t, exit, w.Exit())

	require.Len(t, w.Enemies(), r.Stage.ExitPenaltySpawn)
	pc := w.Player().Cell(w.Resolver())
	for _, e := range w.Enemies() {
		assert.Equal(t, Pontan, e.Profile.Species)
		assert.GreaterOrEqual(t, e.Cell(w.Resolver()).Chebyshev(pc), 3)
	}
	segs := segmentsAt(w.Segments())
	assert.Equal(t, SegmentMid, segs[Coord{3, 3}].Kind)
	assert.Equal(t, SegmentMid, segs[Coord{4, 2}].Kind)
}

func TestBlastKillsEnemy(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	l := openLayout(r, Coord{9, 9})
	l.AddEnemy(Ballom, Coord{7, 9})
	load(t, w, l)
	w.Player().FlamePass = true

	var c clock
	require.True(t, w.PlaceBomb())
	var res TickResult
	for i := 0; i < r.Bomb.Fuse; i++ {
		res = c.tick(w, r.Bomb.Frame, Intent{})
	}

	killed := eventsOf(res.Events, EventEnemyKilled)
	require.Len(t, killed, 1)
	assert.Equal(t, Ballom, killed[0].Species)
	assert.Equal(t, 100, w.Score())
	require.Len(t, w.Enemies(), 1)
	assert.True(t, w.Enemies()[0].Destroyed())

	// A second hit on a dying enemy scores nothing.
	w.killEnemy(w.Enemies()[0])
	assert.Equal(t, 100, w.Score())

	c.tick(w, 250*time.Millisecond, Intent{})
	c.tick(w, 250*time.Millisecond, Intent{})
	c.tick(w, 250*time.Millisecond, Intent{})
	assert.Empty(t, w.Enemies(), "removed after the death animation")
}

func TestFlameShapePreciseMiss(t *testing.T) {
	tile := core.NewRect(0, 0, 1024, 1024)
	inset := Px(8)

	horizontal := &Segment{Kind: SegmentMid, Dir: DirRight}
	vertical := &Segment{Kind: SegmentEnd, Dir: DirUp}
	centre := &Segment{Kind: SegmentCentre}

	assert.Equal(t, core.NewRect(0, 128, 1024, 768), horizontal.FlameShape(tile, inset))
	assert.Equal(t, core.NewRect(128, 0, 768, 1024), vertical.FlameShape(tile, inset))
	assert.Equal(t, tile, centre.FlameShape(tile, inset))

	// Enemy one tile up, pushed 200 units into the segment's tile: the
	// boxes overlap but the narrowed flame does not reach the body.
	e := &Enemy{Body: Body{X: 0, Y: -1024 + 200, Size: 1024}}
	assert.True(t, tile.Intersects(e.Body.Box()))
	assert.False(t, horizontal.FlameShape(tile, inset).Intersects(e.BodyShape(Px(8))))
	assert.True(t, vertical.FlameShape(tile, inset).Intersects(e.BodyShape(Px(8))))
}

func TestSegmentRole(t *testing.T) {
	assert.Equal(t, "centre", (&Segment{Kind: SegmentCentre}).Role())
	assert.Equal(t, "horizontal", (&Segment{Kind: SegmentMid, Dir: DirLeft}).Role())
	assert.Equal(t, "vertical", (&Segment{Kind: SegmentMid, Dir: DirDown}).Role())
	assert.Equal(t, "end_up", (&Segment{Kind: SegmentEnd, Dir: DirUp}).Role())
}
