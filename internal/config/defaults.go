package config

import (
	_ "embed"
)

//go:embed defaults/bomberman.yaml
var defaultBombermanYAML []byte

// DefaultBombermanConfig returns the built-in configuration. It mirrors
// defaults/bomberman.yaml and is used when the embedded file cannot be parsed.
func DefaultBombermanConfig() BombermanConfig {
	return BombermanConfig{
		Grid: GridConfig{
			Rows:            20,
			Cols:            30,
			TilePx:          64,
			HUDOffsetPx:     92,
			SoftBlockChance: 0.25,
			SampleAttempts:  200,
		},
		Player: PlayerConfig{
			SpawnRow:     3,
			SpawnCol:     2,
			Speed:        2,
			HitboxShrink: 17,
			BombLimit:    2,
			Power:        2,
			Lives:        3,
		},
		Bomb:  BombConfig{FuseFrames: 12, FrameMs: 200},
		Blast: BlastConfig{Frames: 4, FrameMs: 75, FlameInsetPx: 8},
		Block: BlockConfig{BurnFrames: 6, FrameMs: 75},
		Enemy: EnemyConfig{
			TurnIntervalMs: 1500,
			DeathFrames:    5,
			DeathFrameMs:   150,
			BodyInsetPx:    8,
		},
		Stage: StageConfig{
			Start:            1,
			Advance:          true,
			TimeLimitS:       200,
			TimeUpSpawn:      10,
			ExitPenaltySpawn: 10,
			PenaltySpecies:   "pontan",
			DeathDelayMs:     1500,
			ClearDelayMs:     2000,
			ClearBonus:       1000,
		},
		Camera: CameraConfig{Deadzone: 0.6, Lerp: 0.14},
		Species: map[string]SpeciesConfig{
			"ballom": {Speed: 1, Score: 100},
			"onil":   {Speed: 2, ChasePlayer: true, LineOfSight: 4, Score: 100},
			"dahl":   {Speed: 2, ChasePlayer: true, Score: 200},
			"minvo":  {Speed: 2, ChasePlayer: true, LineOfSight: 4, SeePlayerHack: true, Score: 200},
			"doria":  {Speed: 0.5, WallHack: true, ChasePlayer: true, LineOfSight: 6, SeePlayerHack: true, Score: 400},
			"ovape":  {Speed: 1, WallHack: true, ChasePlayer: true, LineOfSight: 8, Score: 400},
			"pass":   {Speed: 2, WallHack: true, ChasePlayer: true, LineOfSight: 12, Score: 800},
			"pontan": {Speed: 4, WallHack: true, ChasePlayer: true, LineOfSight: 30, Score: 800},
		},
		PowerUps: map[string]string{
			"bomb_up":    "ballom",
			"fire_up":    "onil",
			"speed_up":   "dahl",
			"wall_hack":  "minvo",
			"remote":     "doria",
			"bomb_pass":  "ovape",
			"flame_pass": "pass",
			"invisible":  "pontan",
		},
		Tiers: []TierConfig{
			{First: 1, Last: 4, Enemies: 5, Weights: []WeightConfig{
				{"ballom", 4}, {"onil", 2},
			}},
			{First: 5, Last: 9, Enemies: 6, Weights: []WeightConfig{
				{"ballom", 2}, {"onil", 3}, {"dahl", 2},
			}},
			{First: 10, Last: 19, Enemies: 6, StagesPerExtraEnemy: 5, Weights: []WeightConfig{
				{"onil", 2}, {"dahl", 2}, {"minvo", 2}, {"doria", 1},
			}},
			{First: 20, Last: 34, Enemies: 7, StagesPerExtraEnemy: 5, Weights: []WeightConfig{
				{"dahl", 2}, {"minvo", 2}, {"doria", 2}, {"ovape", 2},
			}},
			{First: 35, Last: 50, Enemies: 8, StagesPerExtraEnemy: 5, Weights: []WeightConfig{
				{"minvo", 1}, {"doria", 2}, {"ovape", 2}, {"pass", 2},
			}},
		},
	}
}
