package config

// ApplyBombermanPreset overrides lives and the stage timer for a preset.
// Fixed keeps the configured values but stops stage progression, so the
// chosen stage repeats after every clear.
func ApplyBombermanPreset(cfg *BombermanConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Player.BombLimit = max(cfg.Player.BombLimit, 3)
		cfg.Stage.TimeLimitS = 300
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Stage.TimeLimitS = 150
		cfg.Stage.ExitPenaltySpawn = max(cfg.Stage.ExitPenaltySpawn, 12)
	case DifficultyFixed:
		cfg.Stage.Advance = false
	}
}

// ApplyStartStage sets the first stage when n is positive.
func ApplyStartStage(cfg *BombermanConfig, n int) {
	if n > 0 {
		cfg.Stage.Start = n
	}
}
