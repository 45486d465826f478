// bomber is a Bomberman-style game for the terminal.
//
// Usage:
//
//	bomber play              - Play from the first stage
//	bomber preview           - Print a generated stage layout
//	bomber stages            - Show the stage tiers and enemy species
//	bomber scores            - Show the best runs
//	bomber serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.bomber/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log destination (default: ~/.bomber/bomber.log)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/games/bomberman"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// logger is built before any subcommand runs.
var logger = log.New(os.Stderr)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bomber",
	Short: "Bomber - blow up blocks and enemies in your terminal",
	Long: `Bomber is a grid-based bomb-laying action game for the terminal.
Clear every enemy, find the exit hidden under a block and work your
way through fifty stages.

Available commands:
  play     - Play the game
  preview  - Print a generated stage layout
  stages   - Show the stage tiers and enemy species
  scores   - View the best runs
  serve    - Start SSH server for remote play

Examples:
  bomber play
  bomber play --difficulty easy --sound
  bomber preview --stage 12 --seed 7
  bomber scores --browse
  bomber serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bomber/scores.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.bomber/bomber.log", "Log file (\"-\" for stderr)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setupLogging builds the shared logger. Interactive sessions own the
// terminal, so logs go to a file unless "-" is given.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	out := os.Stderr
	if flagLogFile != "" && flagLogFile != "-" {
		path, err := expandHome(flagLogFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "bomber",
		Level:           level,
	})
	bomberman.SetLogger(logger)
	return nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
