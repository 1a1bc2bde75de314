package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sleigh-run/internal/goals"
	"github.com/vovakirdan/sleigh-run/internal/storage"
)

var flagEquip []string

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show goal progress and unlocked cosmetics",
	Long: `Print the goals of a player, their progress and the cosmetics
they unlock. --equip selects an unlocked item as category=item.

Examples:
  sleigh goals
  sleigh goals --player alice
  sleigh goals --equip sleigh_color=gold --equip hat=elf`,
	Args: cobra.NoArgs,
	RunE: runGoals,
}

func init() {
	goalsCmd.Flags().StringArrayVar(&flagEquip, "equip", nil, "Equip an unlocked item (category=item)")
}

func runGoals(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	tracker := goals.NewTracker(playerName(), store, logger)

	for _, eq := range flagEquip {
		category, item, ok := strings.Cut(eq, "=")
		if !ok {
			return fmt.Errorf("--equip wants category=item, got %q", eq)
		}
		if !tracker.Equip(goals.Category(category), item) {
			return fmt.Errorf("%s %q is not unlocked", category, item)
		}
	}

	fmt.Printf("Goals - %s (%d/%d)\n\n", tracker.Player(), tracker.CompletedCount(), len(goals.Catalog))
	for _, p := range tracker.Progress() {
		mark := " "
		if p.Completed {
			mark = "x"
		}
		fmt.Printf("  [%s] %-24s %5d/%-5d  unlocks %s %s\n", mark, p.Name, p.Value, p.Target, p.Reward.Category, p.Reward.Item)
	}

	fmt.Println()
	fmt.Println("Cosmetics:")
	for _, c := range goals.Categories {
		fmt.Printf("  %-13s equipped %-9s unlocked %s\n", c, tracker.Equipped(c), strings.Join(tracker.Unlocked(c), ", "))
	}
	return nil
}
