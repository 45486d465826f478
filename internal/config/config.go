// Package config loads the YAML game configuration and applies difficulty
// presets.
package config

// BombermanConfig is the full game configuration. Every tunable of the
// simulation lives here; the engine converts it into its own rules.
type BombermanConfig struct {
	Grid     GridConfig               `yaml:"grid"`
	Player   PlayerConfig             `yaml:"player"`
	Bomb     BombConfig               `yaml:"bomb"`
	Blast    BlastConfig              `yaml:"blast"`
	Block    BlockConfig              `yaml:"block"`
	Enemy    EnemyConfig              `yaml:"enemy"`
	Stage    StageConfig              `yaml:"stage"`
	Camera   CameraConfig             `yaml:"camera"`
	Species  map[string]SpeciesConfig `yaml:"species"`
	PowerUps map[string]string        `yaml:"power_ups"` // special -> connected species
	Tiers    []TierConfig             `yaml:"tiers"`
}

// GridConfig sizes the level and tunes the generator.
type GridConfig struct {
	Rows            int     `yaml:"rows"`
	Cols            int     `yaml:"cols"`
	TilePx          int     `yaml:"tile_px"`
	HUDOffsetPx     int     `yaml:"hud_offset_px"` // vertical world offset reserved for the HUD
	SoftBlockChance float64 `yaml:"soft_block_chance"`
	SampleAttempts  int     `yaml:"sample_attempts"`
}

// PlayerConfig holds the starting attributes of the player.
type PlayerConfig struct {
	SpawnRow     int     `yaml:"spawn_row"`
	SpawnCol     int     `yaml:"spawn_col"`
	Speed        float64 `yaml:"speed"` // pixels per 1/60 s
	HitboxShrink int     `yaml:"hitbox_shrink"`
	BombLimit    int     `yaml:"bomb_limit"`
	Power        int     `yaml:"power"`
	Remote       bool    `yaml:"remote"`
	Lives        int     `yaml:"lives"`
}

// BombConfig sets the fuse. A bomb counts one fuse tick per frame.
type BombConfig struct {
	FuseFrames int `yaml:"fuse_frames"`
	FrameMs    int `yaml:"frame_ms"`
}

// BlastConfig sets the lifetime and flame shape of blast segments.
type BlastConfig struct {
	Frames       int `yaml:"frames"`
	FrameMs      int `yaml:"frame_ms"`
	FlameInsetPx int `yaml:"flame_inset_px"`
}

// BlockConfig sets the soft block burn animation.
type BlockConfig struct {
	BurnFrames int `yaml:"burn_frames"`
	FrameMs    int `yaml:"frame_ms"`
}

// EnemyConfig holds the species-independent AI timing.
type EnemyConfig struct {
	TurnIntervalMs int `yaml:"turn_interval_ms"`
	DeathFrames    int `yaml:"death_frames"`
	DeathFrameMs   int `yaml:"death_frame_ms"`
	BodyInsetPx    int `yaml:"body_inset_px"`
}

// StageConfig drives progression.
type StageConfig struct {
	Start            int    `yaml:"start"`
	Advance          bool   `yaml:"advance"` // false repeats the same stage
	TimeLimitS       int    `yaml:"time_limit_s"`
	TimeUpSpawn      int    `yaml:"time_up_spawn"`
	ExitPenaltySpawn int    `yaml:"exit_penalty_spawn"`
	PenaltySpecies   string `yaml:"penalty_species"`
	DeathDelayMs     int    `yaml:"death_delay_ms"`
	ClearDelayMs     int    `yaml:"clear_delay_ms"`
	ClearBonus       int    `yaml:"clear_bonus"`
}

// CameraConfig tunes the follow camera.
type CameraConfig struct {
	Deadzone float64 `yaml:"deadzone"` // fraction of the viewport
	Lerp     float64 `yaml:"lerp"`     // fraction closed per 1/60 s
}

// SpeciesConfig is one enemy behaviour profile.
type SpeciesConfig struct {
	Speed         float64 `yaml:"speed"`
	WallHack      bool    `yaml:"wall_hack"`
	ChasePlayer   bool    `yaml:"chase_player"`
	LineOfSight   int     `yaml:"line_of_sight"`
	SeePlayerHack bool    `yaml:"see_player_hack"`
	Score         int     `yaml:"score"`
}

// TierConfig is one row of the stage roster table.
type TierConfig struct {
	First               int            `yaml:"first"`
	Last                int            `yaml:"last"`
	Enemies             int            `yaml:"enemies"`
	StagesPerExtraEnemy int            `yaml:"stages_per_extra_enemy"`
	Weights             []WeightConfig `yaml:"weights"`
}

// WeightConfig is a species and its draw weight within a tier.
type WeightConfig struct {
	Species string `yaml:"species"`
	Weight  int    `yaml:"weight"`
}

// DifficultyPreset names a set of overrides.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset accepts an empty string as normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	}
	return "", false
}
