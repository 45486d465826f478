package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var (
	flagBrowse bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the top 10 runs by score, or browse every run with --browse.
--clear deletes every recorded run and stage clear.

Examples:
  bomber scores
  bomber scores --browse
  bomber scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse runs in an interactive table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
	scoresCmd.MarkFlagsMutuallyExclusive("browse", "clear")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := clearScores(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All runs deleted.")
		return
	}

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println("Best Runs - Bomber")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bomber play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-12s  %s\n", "Rank", "Score", "Stage", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-12s  %s\n", "----", "-----", "-----", "------", "----")
	for i, r := range runs {
		stage := fmt.Sprintf("%d", r.Stage)
		if r.Victory {
			stage += "*"
		}
		fmt.Printf("  %-4d  %-10d  %-6s  %-12s  %s\n", i+1, r.Score, stage, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetStats(); err == nil {
		fmt.Printf("Best: %d over %d runs (%d victories)\n", stats.HighScore, stats.RunsCount, stats.Victories)
	}
}

// clearScores wipes the runs and reports how many were removed.
func clearScores(store *storage.Store) error {
	stats, err := store.GetStats()
	if err != nil {
		return err
	}
	if err := store.ClearRuns(); err != nil {
		return err
	}
	logger.Info("runs cleared", "count", stats.RunsCount)
	return nil
}
