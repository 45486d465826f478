package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/config"
)

// Rules is the validated, engine-native form of the game configuration:
// distances in Fixed units, timers as durations.
type Rules struct {
	Grid     GridRules
	Player   PlayerRules
	Bomb     BombRules
	Blast    BlastRules
	Block    BlockRules
	Enemy    EnemyRules
	Stage    StageRules
	Camera   CameraRules
	Species  map[Species]Profile
	Specials map[PowerUpKind]Species
	Tiers    []Tier
}

type GridRules struct {
	Rows, Cols      int
	Tile            Fixed
	YOffset         Fixed
	SoftBlockChance float64
	SampleAttempts  int
}

type PlayerRules struct {
	Spawn        Coord
	Speed        Fixed
	SpeedStep    Fixed // added by speed_up
	HitboxShrink Fixed
	BombLimit    int
	Power        int
	Remote       bool
	Lives        int
}

type BombRules struct {
	Fuse  int
	Frame time.Duration
}

type BlastRules struct {
	Frames     int
	Frame      time.Duration
	FlameInset Fixed
}

type BlockRules struct {
	BurnFrames int
	Frame      time.Duration
}

type EnemyRules struct {
	TurnInterval time.Duration
	DeathFrames  int
	DeathFrame   time.Duration
	BodyInset    Fixed
}

type StageRules struct {
	Start            int
	Advance          bool
	TimeLimit        time.Duration
	TimeUpSpawn      int
	ExitPenaltySpawn int
	PenaltySpecies   Species
	DeathDelay       time.Duration
	ClearDelay       time.Duration
	ClearBonus       int
}

type CameraRules struct {
	Deadzone float64
	Lerp     float64
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// RulesFromConfig converts and validates a configuration. Every problem is
// reported, joined into one error.
func RulesFromConfig(cfg config.BombermanConfig) (*Rules, error) {
	r := &Rules{
		Grid: GridRules{
			Rows:            cfg.Grid.Rows,
			Cols:            cfg.Grid.Cols,
			Tile:            Px(cfg.Grid.TilePx),
			YOffset:         Px(cfg.Grid.HUDOffsetPx),
			SoftBlockChance: cfg.Grid.SoftBlockChance,
			SampleAttempts:  cfg.Grid.SampleAttempts,
		},
		Player: PlayerRules{
			Spawn:        Coord{Row: cfg.Player.SpawnRow, Col: cfg.Player.SpawnCol},
			Speed:        PxF(cfg.Player.Speed),
			SpeedStep:    Px(1),
			HitboxShrink: Px(cfg.Player.HitboxShrink),
			BombLimit:    cfg.Player.BombLimit,
			Power:        cfg.Player.Power,
			Remote:       cfg.Player.Remote,
			Lives:        cfg.Player.Lives,
		},
		Bomb:  BombRules{Fuse: cfg.Bomb.FuseFrames, Frame: ms(cfg.Bomb.FrameMs)},
		Blast: BlastRules{Frames: cfg.Blast.Frames, Frame: ms(cfg.Blast.FrameMs), FlameInset: Px(cfg.Blast.FlameInsetPx)},
		Block: BlockRules{BurnFrames: cfg.Block.BurnFrames, Frame: ms(cfg.Block.FrameMs)},
		Enemy: EnemyRules{
			TurnInterval: ms(cfg.Enemy.TurnIntervalMs),
			DeathFrames:  cfg.Enemy.DeathFrames,
			DeathFrame:   ms(cfg.Enemy.DeathFrameMs),
			BodyInset:    Px(cfg.Enemy.BodyInsetPx),
		},
		Stage: StageRules{
			Start:            cfg.Stage.Start,
			Advance:          cfg.Stage.Advance,
			TimeLimit:        time.Duration(cfg.Stage.TimeLimitS) * time.Second,
			TimeUpSpawn:      cfg.Stage.TimeUpSpawn,
			ExitPenaltySpawn: cfg.Stage.ExitPenaltySpawn,
			PenaltySpecies:   Species(cfg.Stage.PenaltySpecies),
			DeathDelay:       ms(cfg.Stage.DeathDelayMs),
			ClearDelay:       ms(cfg.Stage.ClearDelayMs),
			ClearBonus:       cfg.Stage.ClearBonus,
		},
		Camera:   CameraRules{Deadzone: cfg.Camera.Deadzone, Lerp: cfg.Camera.Lerp},
		Species:  make(map[Species]Profile, len(cfg.Species)),
		Specials: make(map[PowerUpKind]Species, len(cfg.PowerUps)),
	}

	var errs []error
	for name, sc := range cfg.Species {
		sp := Species(name)
		r.Species[sp] = Profile{
			Species:       sp,
			Speed:         PxF(sc.Speed),
			WallHack:      sc.WallHack,
			ChasePlayer:   sc.ChasePlayer,
			LineOfSight:   sc.LineOfSight,
			SeePlayerHack: sc.SeePlayerHack,
			Score:         sc.Score,
		}
	}
	for kind, species := range cfg.PowerUps {
		k := PowerUpKind(kind)
		if !isSpecial(k) {
			errs = append(errs, configErrorf("power_ups."+kind, "unknown power-up"))
			continue
		}
		r.Specials[k] = Species(species)
	}
	for _, tc := range cfg.Tiers {
		t := Tier{First: tc.First, Last: tc.Last, Enemies: tc.Enemies, StagesPerExtra: tc.StagesPerExtraEnemy}
		for _, w := range tc.Weights {
			t.Weights = append(t.Weights, SpeciesWeight{Species: Species(w.Species), Weight: w.Weight})
		}
		r.Tiers = append(r.Tiers, t)
	}

	if err := r.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

// Validate checks every rule and returns all violations joined, or nil.
func (r *Rules) Validate() error {
	var errs []error
	check := func(ok bool, field, format string, args ...any) {
		if !ok {
			errs = append(errs, configErrorf(field, format, args...))
		}
	}

	g := r.Grid
	check(g.Rows >= 5 && g.Cols >= 5, "grid", "grid must be at least 5x5, got %dx%d", g.Rows, g.Cols)
	check(g.Tile > 0, "grid.tile_px", "must be positive")
	check(g.YOffset >= 0, "grid.hud_offset_px", "must not be negative")
	check(g.SoftBlockChance >= 0 && g.SoftBlockChance <= 1, "grid.soft_block_chance", "must be within [0, 1], got %g", g.SoftBlockChance)
	check(g.SampleAttempts >= 0, "grid.sample_attempts", "must not be negative")

	p := r.Player
	spawnOK := p.Spawn.Row > 0 && p.Spawn.Col > 0 && p.Spawn.Row < g.Rows-1 && p.Spawn.Col < g.Cols-1 &&
		!(p.Spawn.Row%2 == 0 && p.Spawn.Col%2 == 0)
	check(spawnOK, "player.spawn", "%v is a wall or outside the grid", p.Spawn)
	check(p.Speed > 0, "player.speed", "must be positive")
	check(p.HitboxShrink >= 0 && 2*p.HitboxShrink < g.Tile, "player.hitbox_shrink", "must leave a non-empty hitbox")
	check(p.BombLimit >= 1, "player.bomb_limit", "must be at least 1")
	check(p.Power >= 1, "player.power", "must be at least 1")
	check(p.Lives >= 1, "player.lives", "must be at least 1")

	check(r.Bomb.Fuse >= 1, "bomb.fuse_frames", "must be at least 1")
	check(r.Bomb.Frame > 0, "bomb.frame_ms", "must be positive")
	check(r.Blast.Frames >= 1, "blast.frames", "must be at least 1")
	check(r.Blast.Frame > 0, "blast.frame_ms", "must be positive")
	check(r.Blast.FlameInset >= 0 && 2*r.Blast.FlameInset < g.Tile, "blast.flame_inset_px", "must leave a non-empty flame")
	check(r.Block.BurnFrames >= 1, "block.burn_frames", "must be at least 1")
	check(r.Block.Frame > 0, "block.frame_ms", "must be positive")
	check(r.Enemy.TurnInterval > 0, "enemy.turn_interval_ms", "must be positive")
	check(r.Enemy.DeathFrames >= 1, "enemy.death_frames", "must be at least 1")
	check(r.Enemy.DeathFrame > 0, "enemy.death_frame_ms", "must be positive")
	check(r.Enemy.BodyInset >= 0 && 2*r.Enemy.BodyInset < g.Tile, "enemy.body_inset_px", "must leave a non-empty body")

	s := r.Stage
	check(s.TimeLimit > 0, "stage.time_limit_s", "must be positive")
	check(s.TimeUpSpawn >= 0, "stage.time_up_spawn", "must not be negative")
	check(s.ExitPenaltySpawn >= 0, "stage.exit_penalty_spawn", "must not be negative")
	_, ok := r.Species[s.PenaltySpecies]
	check(ok, "stage.penalty_species", "unknown species %q", s.PenaltySpecies)
	check(s.DeathDelay >= 0 && s.ClearDelay >= 0, "stage", "delays must not be negative")
	check(s.ClearBonus >= 0, "stage.clear_bonus", "must not be negative")

	check(r.Camera.Deadzone > 0 && r.Camera.Deadzone <= 1, "camera.deadzone", "must be within (0, 1]")
	check(r.Camera.Lerp > 0 && r.Camera.Lerp <= 1, "camera.lerp", "must be within (0, 1]")

	for _, name := range sortedSpecies(r.Species) {
		prof := r.Species[name]
		field := "species." + string(name)
		check(prof.Speed > 0, field+".speed", "must be positive")
		check(prof.Speed <= 0 || g.Tile%prof.Speed == 0, field+".speed", "%gpx does not divide the tile size", prof.Speed.Pixels())
		check(prof.LineOfSight >= 0, field+".line_of_sight", "must not be negative")
		check(prof.Score >= 0, field+".score", "must not be negative")
	}
	for _, k := range specialKinds {
		if sp, ok := r.Specials[k]; ok {
			_, known := r.Species[sp]
			check(known, "power_ups."+string(k), "unknown species %q", sp)
		}
	}

	if len(r.Tiers) == 0 {
		errs = append(errs, configErrorf("tiers", "at least one tier is required"))
	}
	for i, t := range r.Tiers {
		field := fmt.Sprintf("tiers[%d]", i)
		check(t.First >= 1 && t.First <= t.Last, field, "invalid stage range %d-%d", t.First, t.Last)
		check(i == 0 || t.First == r.Tiers[i-1].Last+1, field, "stages must follow tier %d without gaps", i-1)
		check(t.Enemies >= 0 && t.StagesPerExtra >= 0, field, "enemy counts must not be negative")
		check(len(t.Weights) > 0, field+".weights", "at least one species is required")
		for _, w := range t.Weights {
			_, known := r.Species[w.Species]
			check(known, field+".weights", "unknown species %q", w.Species)
			check(w.Weight > 0, field+".weights", "weight of %q must be positive", w.Species)
		}
	}
	if len(r.Tiers) > 0 {
		_, err := r.TierFor(s.Start)
		check(err == nil, "stage.start", "stage %d is outside the tier table", s.Start)
	}

	return errors.Join(errs...)
}

func sortedSpecies(m map[Species]Profile) []Species {
	out := make([]Species, 0, len(m))
	for sp := range m {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Profile returns the behaviour profile of a species.
func (r *Rules) Profile(sp Species) (Profile, bool) {
	p, ok := r.Species[sp]
	return p, ok
}

// DefaultRules converts the built-in configuration.
func DefaultRules() *Rules {
	r, err := RulesFromConfig(config.DefaultBombermanConfig())
	if err != nil {
		panic(fmt.Sprintf("engine: built-in rules are invalid: %v", err))
	}
	return r
}
