package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Enemy is a roaming monster driven by its species profile.
type Enemy struct {
	ID      int
	Profile Profile
	Body    Body
	Facing  Direction

	destroyed bool
	removed   bool
	chasing   bool
	turnDue   bool
	turn      Interval
	stride    Interval
	walk      Animation
	death     Animation
}

func newEnemy(id int, prof Profile, at Coord, res Resolver, r *Rules) *Enemy {
	x, y := res.TileOrigin(at)
	return &Enemy{
		ID:      id,
		Profile: prof,
		Body:    Body{X: x, Y: y, Size: r.Grid.Tile},
		Facing:  DirLeft,
		turn:    NewInterval(r.Enemy.TurnInterval),
		stride:  NewInterval(StepPeriod),
		walk:    NewLoop(3, 150*time.Millisecond),
	}
}

// Destroyed reports whether the enemy was killed. A destroyed enemy plays
// its death animation and is not collidable.
func (e *Enemy) Destroyed() bool { return e.destroyed }

// Chasing reports whether the enemy locked onto the player this tick.
func (e *Enemy) Chasing() bool { return e.chasing }

// Frame returns the walk or death animation frame.
func (e *Enemy) Frame() int {
	if e.destroyed {
		return e.death.Frame()
	}
	return e.walk.Frame()
}

// Cell returns the cell under the body centre.
func (e *Enemy) Cell(res Resolver) Coord {
	return res.CellOf(e.Body.Centre())
}

// BodyShape is the lethal box used against flames and the player.
func (e *Enemy) BodyShape(inset Fixed) core.Rect {
	return e.Body.Box().Inset(int(inset), int(inset))
}

// Destroy kills the enemy. Only the first call has an effect.
func (e *Enemy) Destroy(r EnemyRules) bool {
	if e.destroyed {
		return false
	}
	e.destroyed = true
	e.chasing = false
	e.death = NewAnimation(r.DeathFrames, r.DeathFrame)
	return true
}

func (e *Enemy) solid(c Cell) bool {
	if e.Profile.WallHack && c.Kind == KindSoftBlock {
		return false
	}
	return !c.Passable()
}

// aiContext is everything an enemy may read while deciding.
type aiContext struct {
	grid   *Grid
	res    Resolver
	rng    *rand.Rand
	player *Player
}

func (e *Enemy) update(ctx aiContext, dt time.Duration) {
	if e.destroyed {
		if e.death.Advance(dt) {
			e.removed = true
		}
		return
	}

	if e.turn.Advance(dt) > 0 {
		e.turnDue = true
	}
	for n := e.stride.Advance(dt); n > 0; n-- {
		e.step(ctx)
	}
	e.walk.Advance(dt)
}

// step steers and moves the enemy by one speed step. A due intersection
// turn is tried on the first step after it fell due; chasing skips it.
func (e *Enemy) step(ctx aiContext) {
	due := e.turnDue
	e.turnDue = false
	e.chasing = e.chase(ctx)
	if !e.chasing && due {
		e.turnAtIntersection(ctx)
	}

	dx, dy := e.Facing.Velocity(e.Profile.Speed)
	movedX, movedY := ctx.res.Move(&e.Body, dx, dy, e.solid)
	if !movedX && !movedY {
		e.redirect(ctx)
	}
}

// chase steers toward a visible player and reports whether it did.
func (e *Enemy) chase(ctx aiContext) bool {
	p := ctx.player
	if !e.Profile.ChasePlayer || p == nil || !p.Alive() || p.Invisible {
		return false
	}
	from, to := e.Cell(ctx.res), p.Cell(ctx.res)
	dRow, dCol := to.Row-from.Row, to.Col-from.Col
	if los := e.Profile.LineOfSight; los > 0 && (absInt(dRow) > los || absInt(dCol) > los) {
		return false
	}
	if !e.Profile.SeePlayerHack && !lineOfSight(ctx.grid, ctx.res, from, to) {
		return false
	}

	var want Direction
	switch {
	case dRow == 0 && dCol == 0:
		return true
	case absInt(dCol) >= absInt(dRow):
		want = DirRight
		if dCol < 0 {
			want = DirLeft
		}
	default:
		want = DirDown
		if dRow < 0 {
			want = DirUp
		}
	}
	if want == e.Facing {
		return true
	}

	// Turns need the enemy centred on the perpendicular axis.
	alignedX, alignedY := ctx.res.Aligned(e.Body.X, e.Body.Y)
	if (want.Horizontal() && !alignedY) || (!want.Horizontal() && !alignedX) {
		return true
	}
	dx, dy := want.Velocity(e.Profile.Speed)
	if !ctx.res.Blocked(e.Body, dx, dy, e.solid) {
		e.Facing = want
	}
	return true
}

func (e *Enemy) turnAtIntersection(ctx aiContext) {
	alignedX, alignedY := ctx.res.Aligned(e.Body.X, e.Body.Y)
	if !alignedX || !alignedY {
		return
	}
	at := e.Cell(ctx.res)
	if at.Row%2 != 1 || at.Col%2 != 1 {
		return
	}
	var open []Direction
	for _, dir := range cardinals {
		if e.turnsInto(ctx.grid.Occupant(at.Step(dir, 1))) {
			open = append(open, dir)
		}
	}
	if len(open) == 0 {
		e.Facing = DirLeft
		return
	}
	e.Facing = open[ctx.rng.Intn(len(open))]
}

// turnsInto reports whether an intersection turn may head into c: only
// empty cells qualify, plus soft blocks for wall_hack species. Revealed
// power-ups and bombs never do, passable or not.
func (e *Enemy) turnsInto(c Cell) bool {
	switch c.Kind {
	case KindEmpty:
		return true
	case KindSoftBlock:
		return e.Profile.WallHack
	}
	return false
}

// redirect picks a new direction after a blocked move, keeping the current
// one when every other direction is blocked too.
func (e *Enemy) redirect(ctx aiContext) {
	var open []Direction
	for _, dir := range cardinals {
		if dir == e.Facing {
			continue
		}
		dx, dy := dir.Velocity(e.Profile.Speed)
		if !ctx.res.Blocked(e.Body, dx, dy, e.solid) {
			open = append(open, dir)
		}
	}
	if len(open) > 0 {
		e.Facing = open[ctx.rng.Intn(len(open))]
	}
}
