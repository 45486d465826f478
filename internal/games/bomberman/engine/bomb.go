package engine

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// BombState is the lifecycle stage of a bomb.
type BombState uint8

const (
	BombArmed BombState = iota
	BombDetonating
	BombRemoved
)

func (s BombState) String() string {
	switch s {
	case BombArmed:
		return "armed"
	case BombDetonating:
		return "detonating"
	}
	return "removed"
}

// Bomb is a placed bomb. The grid cell references it while it is live.
type Bomb struct {
	ID     int
	At     Coord
	Power  int
	Remote bool

	fuse     int
	tick     Interval
	state    BombState
	passable bool
	owner    *Player
	pulse    Animation
}

func newBomb(id int, at Coord, owner *Player, r BombRules) *Bomb {
	return &Bomb{
		ID:       id,
		At:       at,
		Power:    owner.Power,
		Remote:   owner.Remote,
		fuse:     r.Fuse,
		tick:     NewInterval(r.Frame),
		passable: true,
		owner:    owner,
		pulse:    NewLoop(3, r.Frame),
	}
}

// State returns the lifecycle stage.
func (b *Bomb) State() BombState { return b.state }

// Fuse returns the remaining countdown ticks.
func (b *Bomb) Fuse() int { return b.fuse }

// Passable reports whether the placing player may still walk over the bomb.
func (b *Bomb) Passable() bool { return b.passable }

// Frame returns the pulse animation frame.
func (b *Bomb) Frame() int { return b.pulse.Frame() }

// updatePassable clears the flag once the owner's hitbox has left the tile.
// It never turns back on.
func (b *Bomb) updatePassable(tile, hitbox core.Rect) {
	if b.passable && !tile.Intersects(hitbox) {
		b.passable = false
	}
}

// countdown advances the fuse and reports whether it reached zero. Remote
// bombs never time out.
func (b *Bomb) countdown(dt time.Duration) bool {
	if b.state != BombArmed {
		return false
	}
	b.pulse.Advance(dt)
	if b.Remote {
		return false
	}
	b.fuse -= b.tick.Advance(dt)
	if b.fuse <= 0 {
		b.fuse = 0
		return true
	}
	return false
}

// arm moves an armed bomb to Detonating. Only the first call succeeds.
func (b *Bomb) arm() bool {
	if b.state != BombArmed {
		return false
	}
	b.state = BombDetonating
	return true
}
