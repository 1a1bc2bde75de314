package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sleigh-run/internal/platform/tui"
	"github.com/vovakirdan/sleigh-run/internal/registry"
	"github.com/vovakirdan/sleigh-run/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show best runs",
	Long: `Print the top 10 runs of a variant. Without a variant in an
interactive terminal, opens the scoreboard.

Examples:
  sleigh scores dash
  sleigh scores sleigh-shield
  sleigh scores`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			cfg := runtimeConfig()
			_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			return err
		}
		return printAllStats(store)
	}

	gameID, err := resolveVariant(args[0])
	if err != nil {
		return err
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Printf("\nPlay 'sleigh play %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %s\n", "----", "------", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-12s  %-8d  %s\n", i+1, e.Player, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// printAllStats prints one line per played variant.
func printAllStats(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Printf("  %-16s  %-5s  %-8s  %s\n", "Variant", "Runs", "Best", "Average")
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok {
			fmt.Printf("  %-16s  %-5d  %-8s  %s\n", g.ID, 0, "-", "-")
			continue
		}
		fmt.Printf("  %-16s  %-5d  %-8d  %.0f\n", g.ID, st.GamesCount, st.HighScore, st.AvgScore)
	}
	return nil
}
