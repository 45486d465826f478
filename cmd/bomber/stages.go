package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/games/bomberman"
	"github.com/vovakirdan/tui-bomber/internal/games/bomberman/engine"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Show the stage tiers and enemy species",
	Long: `Print the tier table (which enemies appear on which stages) and the
behaviour of every enemy species under the current rules.

Examples:
  bomber stages
  bomber stages --config ./my-bomberman.yaml`,
	Args: cobra.NoArgs,
	Run:  runStages,
}

var flagStagesConfig string

func init() {
	stagesCmd.Flags().StringVar(&flagStagesConfig, "config", "", "Path to custom game config YAML")
}

func runStages(cmd *cobra.Command, args []string) {
	bomberman.SetConfigPath(flagStagesConfig)
	rules, err := bomberman.LoadRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Stage tiers")
	fmt.Println()
	fmt.Printf("  %-7s  %-7s  %s\n", "Stages", "Enemies", "Roster (weight)")
	fmt.Printf("  %-7s  %-7s  %s\n", "------", "-------", "---------------")
	for _, t := range rules.Tiers {
		roster := make([]string, 0, len(t.Weights))
		for _, w := range t.Weights {
			roster = append(roster, fmt.Sprintf("%s(%d)", w.Species, w.Weight))
		}
		enemies := fmt.Sprintf("%d", t.Enemies)
		if t.StagesPerExtra > 0 {
			enemies += "+"
		}
		fmt.Printf("  %-7s  %-7s  %s\n", fmt.Sprintf("%d-%d", t.First, t.Last), enemies, strings.Join(roster, " "))

		if pool := rules.SpecialPool(t); len(pool) > 0 {
			names := make([]string, len(pool))
			for i, k := range pool {
				names[i] = string(k)
			}
			fmt.Printf("  %-7s  %-7s  specials: %s\n", "", "", strings.Join(names, ", "))
		}
	}

	fmt.Println()
	fmt.Println("Species")
	fmt.Println()
	fmt.Printf("  %-8s  %6s  %6s  %-9s  %s\n", "Name", "Speed", "Score", "Walls", "Chase")
	fmt.Printf("  %-8s  %6s  %6s  %-9s  %s\n", "----", "-----", "-----", "-----", "-----")
	for _, p := range sortedProfiles(rules) {
		walls := "blocked"
		if p.WallHack {
			walls = "passes"
		}
		fmt.Printf("  %-8s  %6.2f  %6d  %-9s  %s\n", p.Species, p.Speed.Pixels(), p.Score, walls, chaseSummary(p))
	}
}

func sortedProfiles(r *engine.Rules) []engine.Profile {
	profiles := make([]engine.Profile, 0, len(r.Species))
	for _, p := range r.Species {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Score != profiles[j].Score {
			return profiles[i].Score < profiles[j].Score
		}
		return profiles[i].Species < profiles[j].Species
	})
	return profiles
}

func chaseSummary(p engine.Profile) string {
	if !p.ChasePlayer {
		return "wanders"
	}
	s := "unlimited range"
	if p.LineOfSight > 0 {
		s = fmt.Sprintf("within %d cells", p.LineOfSight)
	}
	if p.SeePlayerHack {
		s += ", sees through walls"
	}
	return s
}
