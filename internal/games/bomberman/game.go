// Package bomberman adapts the simulation engine to the platform's Game
// interface: it loads the configuration, feeds a simulated clock, maps input
// frames to intents and turns engine events into cues.
package bomberman

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomberman/engine"
	"github.com/vovakirdan/tui-bomber/internal/registry"
)

// ID is the registry key of the game.
const ID = "bomberman"

const (
	minScreenW = 40
	minScreenH = 12
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// startStage overrides the configured first stage when positive
var startStage int

var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to normal; the CLI rejects them before they get here.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetStartStage sets the first stage of a run.
func SetStartStage(n int) {
	startStage = n
}

// SetLogger sets the logger handed to every new world.
func SetLogger(l *log.Logger) {
	logger = l
}

// LoadConfig reads the configuration with the CLI overrides applied.
func LoadConfig() (config.BombermanConfig, error) {
	cfg, err := config.LoadBomberman(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyBombermanPreset(&cfg, difficultyPreset)
	config.ApplyStartStage(&cfg, startStage)
	return cfg, nil
}

// LoadRules loads and validates the rules a new game will run with.
func LoadRules() (*engine.Rules, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return engine.RulesFromConfig(cfg)
}

// Game implements registry.Game on top of an engine.World.
type Game struct {
	runtime core.RuntimeConfig
	world   *engine.World
	now     time.Duration
	ticks   uint64
	paused  bool
	err     error

	screenTooSmall bool
}

// New creates an unstarted game; call Reset before stepping it.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string { return ID }
func (g *Game) Title() string { return "Bomberman" }

// Reset starts a new run. An invalid configuration falls back to the
// built-in defaults.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.now = 0
	g.ticks = 0
	g.paused = false
	g.err = nil
	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	rules, err := LoadRules()
	if err != nil {
		if logger != nil {
			logger.Warn("invalid bomberman config, using defaults", "err", err)
		}
		rules = engine.DefaultRules()
	}

	opts := []engine.Option{}
	if logger != nil {
		opts = append(opts, engine.WithLogger(logger))
	}
	world, err := engine.NewWorld(rules, runtime.Seed, opts...)
	if err != nil {
		g.err = err
		g.world = nil
		return
	}
	g.world = world
	g.fitCamera()
}

// Resize adapts the view to a new screen size and keeps the run going.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.screenTooSmall = width < minScreenW || height < minScreenH
	if g.world != nil {
		g.fitCamera()
	}
}

// fitCamera sizes the camera viewport to the map area of the screen.
func (g *Game) fitCamera() {
	grid := g.world.Rules().Grid
	cols, rows := viewportTiles(g.runtime.ScreenW, g.runtime.ScreenH)
	g.world.Camera().SetViewport(engine.Fixed(cols)*grid.Tile, engine.Fixed(rows)*grid.Tile)
	px, py := g.world.Player().Body.Centre()
	g.world.Camera().Snap(px, py-grid.YOffset)
}

// Step advances the simulated clock by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	phase := g.world.Phase()
	if in.Has(core.ActionRestart) && phase.Over() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !phase.Over() {
		g.paused = !g.paused
	}
	if g.paused || phase.Over() {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	g.now += g.runtime.TickDuration()
	res := g.world.Tick(g.now, intentFrom(in))

	return core.StepResult{State: g.State(), Cues: cuesFrom(res.Events)}
}

// State reports the run status to the platform.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{GameOver: true}
	}
	phase := g.world.Phase()
	return core.GameState{
		Score:    g.world.Score(),
		Level:    g.world.Stage(),
		Lives:    g.world.Lives(),
		GameOver: phase.Over(),
		Victory:  phase == engine.PhaseVictory,
		Paused:   g.paused,
	}
}

// World exposes the running simulation, nil when Reset failed.
func (g *Game) World() *engine.World {
	return g.world
}

// Err is the error that prevented the last Reset from starting a world.
func (g *Game) Err() error {
	return g.err
}

func intentFrom(in core.InputFrame) engine.Intent {
	var it engine.Intent
	switch in.Move() {
	case core.ActionLeft:
		it.Move = engine.DirLeft
	case core.ActionRight:
		it.Move = engine.DirRight
	case core.ActionUp:
		it.Move = engine.DirUp
	case core.ActionDown:
		it.Move = engine.DirDown
	}
	it.PlaceBomb = in.Has(core.ActionBomb)
	it.Detonate = in.Has(core.ActionDetonate)
	return it
}

// cuesFrom turns engine events into presentation cues named after the
// event kind.
func cuesFrom(events []engine.Event) []core.Cue {
	if len(events) == 0 {
		return nil
	}
	cues := make([]core.Cue, 0, len(events))
	for _, e := range events {
		cues = append(cues, core.Cue{
			Name:    e.Kind.String(),
			Level:   e.Stage,
			Value:   e.Score,
			Elapsed: e.Elapsed,
		})
	}
	return cues
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
