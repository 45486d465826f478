package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

func TestMoveHold(t *testing.T) {
	t0 := time.Unix(1000, 0)
	var h moveHold

	if got := h.active(t0); got != core.ActionNone {
		t.Fatalf("active() on empty hold = %v, expected None", got)
	}

	h.press(core.ActionRight, t0)
	if got := h.active(t0.Add(firstPressHold - time.Millisecond)); got != core.ActionRight {
		t.Errorf("active() before the first hold expires = %v, expected Right", got)
	}
	if got := h.active(t0.Add(firstPressHold)); got != core.ActionNone {
		t.Errorf("active() after the first hold = %v, expected None", got)
	}

	// Auto-repeat of the same key extends by the shorter window.
	t1 := t0.Add(400 * time.Millisecond)
	h.press(core.ActionRight, t1)
	if got := h.active(t1.Add(repeatHold - time.Millisecond)); got != core.ActionRight {
		t.Errorf("active() within repeat window = %v, expected Right", got)
	}
	if got := h.active(t1.Add(repeatHold)); got != core.ActionNone {
		t.Errorf("active() after repeat window = %v, expected None", got)
	}

	// A new direction takes over immediately with a full hold.
	h.press(core.ActionUp, t1)
	if got := h.active(t1.Add(200 * time.Millisecond)); got != core.ActionUp {
		t.Errorf("active() after switching = %v, expected Up", got)
	}

	h.release()
	if got := h.active(t1); got != core.ActionNone {
		t.Errorf("active() after release = %v, expected None", got)
	}
}
