package engine

import "time"

// SoftBlock is a destructible block, optionally hiding a power-up.
type SoftBlock struct {
	At      Coord
	Hidden  *PowerUp
	burning bool
	burn    Animation
	cleared bool
}

// Burning reports whether the block has been hit and is burning out.
func (b *SoftBlock) Burning() bool { return b.burning }

// Frame returns the burn animation frame.
func (b *SoftBlock) Frame() int { return b.burn.Frame() }

// Ignite starts the burn. It returns false if the block was already burning.
func (b *SoftBlock) Ignite(r BlockRules) bool {
	if b.burning {
		return false
	}
	b.burning = true
	b.burn = NewAnimation(r.BurnFrames, r.Frame)
	return true
}

// advance reports true once, when the burn finishes.
func (b *SoftBlock) advance(dt time.Duration) bool {
	if !b.burning || b.cleared {
		return false
	}
	if b.burn.Advance(dt) {
		b.cleared = true
		return true
	}
	return false
}

// replacement is what the cell holds after the block burns out.
func (b *SoftBlock) replacement() Cell {
	if b.Hidden != nil {
		return PowerUpCell(b.Hidden)
	}
	return EmptyCell()
}
