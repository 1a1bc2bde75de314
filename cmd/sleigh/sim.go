package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sleigh-run/internal/core"
	"github.com/vovakirdan/sleigh-run/internal/games/sleigh"
)

var (
	flagSimFrames      int
	flagSimAbility     string
	flagSimRoute       string
	flagSimAutoAbility bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation and print a summary",
	Long: `Run the simulation without a terminal UI. An autopilot steers away
from obstacles; events are logged as they happen and a summary is printed
at the end. The same --seed and flags always give the same run.

Examples:
  sleigh sim --seed 42
  sleigh sim --frames 7200 --ability shield --route left --auto-ability
  sleigh sim --seed 7 --difficulty hard -v`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 3600, "Maximum frames to simulate")
	simCmd.Flags().StringVar(&flagSimAbility, "ability", "dash", "Ability: dash, shield, slowtime")
	simCmd.Flags().StringVar(&flagSimRoute, "route", "none", "Branch to take at forks: left, right, none")
	simCmd.Flags().BoolVar(&flagSimAutoAbility, "auto-ability", false, "Use the ability whenever it is ready")
}

func parseRoute(s string) (sleigh.Route, error) {
	switch s {
	case "left":
		return sleigh.RouteLeft, nil
	case "right":
		return sleigh.RouteRight, nil
	case "none", "":
		return sleigh.RouteNeutral, nil
	}
	return sleigh.RouteNeutral, fmt.Errorf("unknown route %q (use left, right or none)", s)
}

func runSim(_ *cobra.Command, _ []string) error {
	kind, err := sleigh.ParseAbility(flagSimAbility)
	if err != nil {
		return err
	}
	route, err := parseRoute(flagSimRoute)
	if err != nil {
		return err
	}
	if flagSimFrames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", flagSimFrames)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := sleigh.New(kind)
	counts := make(map[string]int)
	g.Subscribe(func(e sleigh.Event) {
		name, kv := describeEvent(e)
		counts[name]++
		logger.Info(name, append([]any{"frame", g.Simulation().Frame()}, kv...)...)
	})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})

	pilot := sleigh.Autopilot{Route: route, UseAbility: flagSimAutoAbility}
	for g.Simulation().Frame() < flagSimFrames && !g.State().GameOver {
		g.Step(pilot.Input(g))
	}

	sim := g.Simulation()
	snap := sim.Snapshot()
	fmt.Printf("Sleigh Run simulation - %s\n\n", g.Title())
	fmt.Printf("  %-12s %d\n", "Seed", seed)
	fmt.Printf("  %-12s %d (%.1fs)\n", "Frames", sim.Frame(), float64(sim.Frame())/float64(flagFPS))
	fmt.Printf("  %-12s %d\n", "Score", g.State().Score)
	fmt.Printf("  %-12s %v\n", "Crashed", g.State().GameOver)
	fmt.Printf("  %-12s x%.2f\n", "Difficulty", sim.Difficulty())
	fmt.Printf("  %-12s %d\n", "Ability uses", sim.Ability().Uses())
	fmt.Printf("  %-12s %016x\n", "State hash", snap.Hash())

	if len(counts) > 0 {
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println()
		fmt.Println("  Events:")
		for _, name := range names {
			fmt.Printf("    %-20s %d\n", name, counts[name])
		}
	}
	return nil
}

// describeEvent names an event and flattens its fields for logging.
func describeEvent(e sleigh.Event) (string, []any) {
	switch ev := e.(type) {
	case sleigh.ObstacleCollisionEvent:
		return "collision", []any{"obstacle", ev.Obstacle, "fatal", ev.Fatal, "shield", ev.Source}
	case sleigh.CollectibleCollectedEvent:
		return "pickup", []any{"type", ev.Type, "points", ev.Points, "gold", ev.Gold}
	case sleigh.MomentStartedEvent:
		return "moment started", []any{"moment", ev.Moment, "duration", ev.Duration}
	case sleigh.MomentEndedEvent:
		return "moment ended", []any{"moment", ev.Moment}
	case sleigh.SnowstormSurvivedEvent:
		return "snowstorm survived", nil
	case sleigh.AbilityActivatedEvent:
		return "ability", []any{"ability", ev.Ability, "uses", ev.Uses}
	case sleigh.RouteDecisionEvent:
		return "fork", []any{"window", ev.Window}
	case sleigh.RouteSelectedEvent:
		return "route", []any{"route", ev.Route, "auto", ev.Auto}
	case sleigh.PowerUpExpiredEvent:
		return "power-up expired", []any{"power_up", ev.PowerUp}
	case sleigh.RunEndedEvent:
		return "run ended", []any{"score", ev.Score, "frames", ev.Frames}
	}
	return fmt.Sprintf("%T", e), nil
}
