package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bomber/internal/audio"
	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomberman"
	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagStage      int
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start a new run.

Controls:
  Arrows/WASD  - Move
  Space/B      - Place bomb
  X/E          - Detonate remote bomb
  P/Esc        - Pause
  R            - Restart (after game over)
  ?            - Toggle help
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options (with the built-in rules):
` + difficultyHelp() + `
Examples:
  bomber play
  bomber play --difficulty easy
  bomber play --stage 20 --seed 42
  bomber play --config ./my-bomberman.yaml --sound`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagStage, "stage", 0, "Stage to start from (0 = configured start)")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

// difficultyHelp describes each preset from what it does to the default
// configuration.
func difficultyHelp() string {
	var b strings.Builder
	for _, p := range []config.DifficultyPreset{
		config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed,
	} {
		cfg := config.DefaultBombermanConfig()
		config.ApplyBombermanPreset(&cfg, p)
		fmt.Fprintf(&b, "  %-6s - %d lives, %ds per stage", p, cfg.Player.Lives, cfg.Stage.TimeLimitS)
		if !cfg.Stage.Advance {
			b.WriteString(", the starting stage repeats")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// applyGameFlags hands the config overrides to the game package.
func applyGameFlags() error {
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}
	bomberman.SetConfigPath(flagConfig)
	bomberman.SetDifficultyPreset(flagDifficulty)
	bomberman.SetStartStage(flagStage)

	// Reject a bad config up front instead of silently playing defaults.
	_, err := bomberman.LoadRules()
	return err
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(bomberman.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var player *audio.Player
	if flagSound {
		player = audio.NewPlayer(logger)
		if err := player.Init(); err != nil {
			player = nil
		}
	}

	runErr := tui.Run(game, cfg, tui.Options{
		Store:  store,
		Audio:  player,
		Logger: logger,
		Player: os.Getenv("USER"),
	})

	if player != nil {
		player.Close()
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
