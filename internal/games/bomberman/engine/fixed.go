// Package engine is the deterministic simulation behind the bomberman game:
// the tile grid, level generation, bombs and blasts, collision, enemy AI, the
// player controller and the tick orchestrator. It knows nothing about
// terminals; the game package renders it.
package engine

import (
	"math"
	"time"
)

// Scale is the number of fixed-point units per source pixel.
const Scale = 16

// Fixed is a world coordinate or distance in 1/Scale pixels. Integer
// positions keep grid alignment checks exact.
type Fixed int

// Px converts whole pixels to fixed-point.
func Px(px int) Fixed {
	return Fixed(px * Scale)
}

// PxF converts fractional pixels to fixed-point, rounded to the nearest unit.
func PxF(px float64) Fixed {
	return Fixed(math.Round(px * Scale))
}

// StepPeriod is the simulated time one speed step covers. Speeds are
// configured per 1/60 s, and movers take one whole step per elapsed period
// whatever the tick rate.
const StepPeriod = time.Second / 60

// Pixels converts back to pixels.
func (f Fixed) Pixels() float64 {
	return float64(f) / Scale
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b Fixed) int {
	q := int(a / b)
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
