package core

import "time"

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickDuration is the simulated time covered by one Step.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int
	Level    int // Current stage or level, 0 when the game has none
	Lives    int
	GameOver bool
	Victory  bool
	Paused   bool
}

// Cue is a presentation hint emitted by a game step: something happened that
// a sound, a popup or a stats record may react to.
type Cue struct {
	Name    string
	Level   int
	Value   int
	Elapsed time.Duration
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	Cues  []Cue
}
