package engine

// Direction is a cardinal facing.
type Direction uint8

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// cardinals is the fixed scan order used by blasts and AI.
var cardinals = [4]Direction{DirLeft, DirRight, DirUp, DirDown}

// Delta returns the grid step for the direction.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	}
	return 0, 0
}

// Velocity returns the world-space step for the given speed.
func (d Direction) Velocity(speed Fixed) (dx, dy Fixed) {
	dRow, dCol := d.Delta()
	return Fixed(dCol) * speed, Fixed(dRow) * speed
}

// Horizontal reports whether the direction moves along X.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "none"
}
