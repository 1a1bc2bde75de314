package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sleigh-run/internal/core"
	"github.com/vovakirdan/sleigh-run/internal/games/sleigh"
	"github.com/vovakirdan/sleigh-run/internal/goals"
	"github.com/vovakirdan/sleigh-run/internal/platform/tui"
	"github.com/vovakirdan/sleigh-run/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start a run of the given variant (default: dash).

Controls:
  Up/Down, W/S      - Steer
  Left/Right, A/D   - Choose a branch at a fork
  E/Space           - Use ability
  P                 - Pause
  R                 - Restart (after a crash)
  B/Esc             - Leave (paused or after a crash)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty presets:
  easy   - Slower ramp, more pickups
  normal - Config defaults
  hard   - Starts faster, ramps faster, denser obstacles
  fixed  - No ramp

Examples:
  sleigh play
  sleigh play shield --difficulty hard
  sleigh play sleigh-slowtime --config ./runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	arg := "dash"
	if len(args) == 1 {
		arg = args[0]
	}
	gameID, err := resolveVariant(arg)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	tl, closeLog := tuiLogger()
	defer closeLog()
	sleigh.SetLogger(tl)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	tracker := goals.NewTracker(playerName(), progressStore(store), tl)
	if err := tui.Run(game, store, tracker, runtimeConfig(), tl); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
