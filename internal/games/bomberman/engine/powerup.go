package engine

// PowerUpKind names a power-up.
type PowerUpKind string

const (
	PowerNone      PowerUpKind = ""
	PowerBombUp    PowerUpKind = "bomb_up"
	PowerFireUp    PowerUpKind = "fire_up"
	PowerSpeedUp   PowerUpKind = "speed_up"
	PowerWallHack  PowerUpKind = "wall_hack"
	PowerRemote    PowerUpKind = "remote"
	PowerBombPass  PowerUpKind = "bomb_pass"
	PowerFlamePass PowerUpKind = "flame_pass"
	PowerInvisible PowerUpKind = "invisible"
	PowerExit      PowerUpKind = "exit"
)

// specialKinds lists the specials in pool order.
var specialKinds = []PowerUpKind{
	PowerBombUp, PowerFireUp, PowerSpeedUp, PowerWallHack,
	PowerRemote, PowerBombPass, PowerFlamePass, PowerInvisible,
}

func isSpecial(k PowerUpKind) bool {
	for _, s := range specialKinds {
		if s == k {
			return true
		}
	}
	return false
}

// PowerUp is hidden in a soft block until the block burns out.
type PowerUp struct {
	Kind     PowerUpKind
	At       Coord
	revealed bool
	taken    bool
}

// Revealed reports whether the power-up is visible in the grid.
func (p *PowerUp) Revealed() bool { return p.revealed }

// Taken reports whether the power-up was collected or destroyed.
func (p *PowerUp) Taken() bool { return p.taken }

// apply mutates the player's attributes. The exit is never applied.
func (p *PowerUp) apply(pl *Player, speedStep Fixed) {
	switch p.Kind {
	case PowerBombUp:
		pl.BombLimit++
	case PowerFireUp:
		pl.Power++
	case PowerSpeedUp:
		pl.Speed += speedStep
	case PowerWallHack:
		pl.WallHack = true
	case PowerRemote:
		pl.Remote = true
	case PowerBombPass:
		pl.BombPass = true
	case PowerFlamePass:
		pl.FlamePass = true
	case PowerInvisible:
		pl.Invisible = true
	}
}
