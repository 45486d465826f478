package tui

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Terminals report key presses, never releases, so a movement key counts
// as held until its auto-repeat stops arriving. The first press covers the
// terminal's repeat delay; later repeats only need to bridge the repeat
// interval.
const (
	firstPressHold = 450 * time.Millisecond
	repeatHold     = 120 * time.Millisecond
)

// moveHold tracks the movement key currently considered held.
type moveHold struct {
	action core.Action
	until  time.Time
}

// press records a movement key. A different direction replaces the held
// one at once.
func (h *moveHold) press(a core.Action, now time.Time) {
	if a == h.action && now.Before(h.until) {
		h.until = now.Add(repeatHold)
		return
	}
	h.action = a
	h.until = now.Add(firstPressHold)
}

// active returns the held direction, or ActionNone once it expired.
func (h *moveHold) active(now time.Time) core.Action {
	if h.action == core.ActionNone || !now.Before(h.until) {
		return core.ActionNone
	}
	return h.action
}

func (h *moveHold) release() {
	h.action = core.ActionNone
}
