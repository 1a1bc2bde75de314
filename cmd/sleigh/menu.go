package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sleigh-run/internal/games/sleigh"
	"github.com/vovakirdan/sleigh-run/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant, browse scores and equip cosmetics",
	Long: `Start the interactive menu.

Menu controls:
  Up/Down, J/K   - Navigate
  Enter          - Play the selected variant
  Tab            - Best runs
  G              - Goals and cosmetics
  Q              - Quit

Leaving a run (B/Esc while paused or after a crash) returns to the menu.

Examples:
  sleigh menu
  sleigh menu --player alice --fps 30`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	tl, closeLog := tuiLogger()
	defer closeLog()
	sleigh.SetLogger(tl)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, runtimeConfig(), playerName(), tl); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
