package core

import (
	"testing"
	"time"
)

func TestInputFrameMove(t *testing.T) {
	f := NewInputFrame()
	if f.Move() != ActionNone {
		t.Errorf("Move() on empty frame = %v, expected None", f.Move())
	}

	f.Set(ActionBomb)
	f.Set(ActionLeft)
	if f.Move() != ActionLeft {
		t.Errorf("Move() = %v, expected Left", f.Move())
	}
	if !f.Has(ActionBomb) {
		t.Error("Has(Bomb) = false after Set")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionBomb) || !clone.Has(ActionBomb) {
		t.Error("Clone() must be independent of Clear()")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a        Action
		expected string
	}{
		{ActionDetonate, "Detonate"},
		{ActionRight, "Right"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
	if !ActionUp.IsMove() || ActionBomb.IsMove() {
		t.Error("IsMove() misclassified an action")
	}
}

func TestTickDuration(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TickDuration(); got != time.Second/60 {
		t.Errorf("TickDuration() = %v, expected %v", got, time.Second/60)
	}
	cfg.TickRate = 0
	if got := cfg.TickDuration(); got != time.Second/60 {
		t.Errorf("TickDuration() with zero rate = %v", got)
	}
}
