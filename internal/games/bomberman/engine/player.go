package engine

import "time"

// Intent is the player's input for one tick.
type Intent struct {
	Move      Direction // DirNone stands still
	PlaceBomb bool
	Detonate  bool
}

// Player is the controlled character. Attribute fields are mutated by
// power-ups.
type Player struct {
	Body   Body
	Facing Direction
	Moving bool

	Speed     Fixed
	BombLimit int
	Power     int
	WallHack  bool
	Remote    bool
	BombPass  bool
	FlamePass bool
	Invisible bool

	active int
	stack  []*Bomb // live bombs, most recent last
	alive  bool
	stride Interval
	walk   Animation
	death  Animation
}

func newPlayer(r PlayerRules) *Player {
	p := &Player{stride: NewInterval(StepPeriod)}
	p.resetAttributes(r)
	return p
}

// resetAttributes restores the starting loadout.
func (p *Player) resetAttributes(r PlayerRules) {
	p.Speed = r.Speed
	p.BombLimit = r.BombLimit
	p.Power = r.Power
	p.Remote = r.Remote
	p.WallHack = false
	p.BombPass = false
	p.FlamePass = false
	p.Invisible = false
}

// spawn places the player on a cell and clears per-stage state.
func (p *Player) spawn(res Resolver, at Coord, r *Rules) {
	x, y := res.TileOrigin(at)
	p.Body = Body{X: x, Y: y, Size: r.Grid.Tile, Inset: r.Player.HitboxShrink}
	p.Facing = DirDown
	p.Moving = false
	p.active = 0
	p.stack = nil
	p.alive = true
	p.stride = NewInterval(StepPeriod)
	p.walk = NewLoop(3, 150*time.Millisecond)
	p.death = NewAnimation(r.Enemy.DeathFrames, r.Stage.DeathDelay/time.Duration(max(r.Enemy.DeathFrames, 1)))
}

// Alive reports whether the player is alive.
func (p *Player) Alive() bool { return p.alive }

// ActiveBombs returns the number of live bombs the player owns.
func (p *Player) ActiveBombs() int { return p.active }

// Frame returns the walk or death animation frame.
func (p *Player) Frame() int {
	if !p.alive {
		return p.death.Frame()
	}
	return p.walk.Frame()
}

// Cell returns the cell under the hitbox centre.
func (p *Player) Cell(res Resolver) Coord {
	return res.CellOf(p.Body.Centre())
}

func (p *Player) solid(c Cell) bool {
	switch c.Kind {
	case KindSoftBlock:
		if p.WallHack {
			return false
		}
	case KindBomb:
		if p.BombPass {
			return false
		}
	}
	return !c.Passable()
}

func (p *Player) move(res Resolver, dir Direction, dt time.Duration) {
	p.Moving = dir != DirNone
	if !p.Moving {
		p.stride.Reset()
		return
	}
	p.Facing = dir
	dx, dy := dir.Velocity(p.Speed)
	for n := p.stride.Advance(dt); n > 0; n-- {
		res.Move(&p.Body, dx, dy, p.solid)
	}
	p.walk.Advance(dt)
}

func (p *Player) hold(b *Bomb) {
	p.active++
	p.stack = append(p.stack, b)
}

// release frees the slot held by b. It reports false when b was not held,
// so a bomb can never be released twice.
func (p *Player) release(b *Bomb) bool {
	for i, held := range p.stack {
		if held != b {
			continue
		}
		p.stack = append(p.stack[:i], p.stack[i+1:]...)
		p.active--
		return true
	}
	return false
}

// lastBomb returns the most recently placed live bomb.
func (p *Player) lastBomb() *Bomb {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].State() == BombArmed {
			return p.stack[i]
		}
	}
	return nil
}

// kill reports true only on the first call.
func (p *Player) kill() bool {
	if !p.alive {
		return false
	}
	p.alive = false
	p.Moving = false
	return true
}
