// Package sleigh implements Sleigh Run, a continuous runner where the sleigh
// dodges rooftop hazards while routes, moments, an ability and power-ups
// reshape the lane.
package sleigh

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sleigh-run/internal/config"
	"github.com/vovakirdan/sleigh-run/internal/core"
	"github.com/vovakirdan/sleigh-run/internal/registry"
)

// Game adapts a Simulation to the registry.Game interface for one ability.
type Game struct {
	kind      AbilityKind
	runtime   core.RuntimeConfig
	cfg       config.RunnerConfig
	sim       *Simulation
	player    *Player
	scorer    *Scorer
	shake     *Shake
	cosmetics Cosmetics
	listeners []func(Event)
	paused    bool
	gameOver  bool
	last      StepReport
	notice    string // Transient HUD message
	noticeTTL int
}

// Cosmetics are unlockable visual variations.
type Cosmetics struct {
	SleighColor core.Color
	Hat         rune // 0 for none
	Night       bool
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the config default.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok && preset != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

// SetLogger sets the logger handed to new simulations.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// New creates a new Sleigh Run game with the given ability.
func New(kind AbilityKind) *Game {
	return &Game{kind: kind, cosmetics: Cosmetics{SleighColor: core.ColorBrightRed}}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "sleigh-" + g.kind.String()
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.kind {
	case AbilityDash:
		return "Sleigh Run: Dash"
	case AbilityShield:
		return "Sleigh Run: Shield"
	default:
		return "Sleigh Run: Slow Time"
	}
}

// Ability returns the session ability.
func (g *Game) Ability() AbilityKind {
	return g.kind
}

// Subscribe registers fn for every simulation event of this and later runs.
func (g *Game) Subscribe(fn func(Event)) {
	g.listeners = append(g.listeners, fn)
}

// SetCosmetics changes the sleigh appearance.
func (g *Game) SetCosmetics(c Cosmetics) {
	g.cosmetics = c
}

// Simulation exposes the underlying simulation, nil before Reset.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Player exposes the steered sleigh, nil before Reset.
func (g *Game) Player() *Player {
	return g.player
}

// loadConfig resolves the runner config, falling back to defaults when the
// configured file is unusable.
func loadConfig() config.RunnerConfig {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		logger.Warn("using default runner config", "err", err)
		cfg = config.DefaultRunnerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = loadConfig()

	sim, err := NewSimulation(g.cfg, g.kind, runtime.Seed, WithListener(g.onEvent), WithLogger(logger))
	if err != nil {
		logger.Warn("runner config rejected, using defaults", "err", err)
		g.cfg = config.DefaultRunnerConfig()
		sim, err = NewSimulation(g.cfg, g.kind, runtime.Seed, WithListener(g.onEvent), WithLogger(logger))
		if err != nil {
			panic(err) // defaults are covered by tests
		}
	}
	g.sim = sim

	g.player = NewPlayer(g.cfg.Player, g.cfg.Canvas)
	g.scorer = NewScorer(g.cfg.Scoring.PerSecond, runtime.TickRate)
	if g.shake == nil {
		g.shake = NewShake(g.cfg.Effects, runtime.Seed+1)
	}
	g.shake.Reset(runtime.Seed + 1)

	g.paused = false
	g.gameOver = false
	g.last = StepReport{Modifiers: g.sim.Modifiers()}
	g.notice = ""
	g.noticeTTL = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)

	report := g.sim.Step(g.player)
	g.last = report

	if report.Over {
		g.gameOver = true
		g.sim.Emit(RunEndedEvent{Score: g.scorer.Score(), Frames: report.Frame})
		return core.StepResult{State: g.State()}
	}

	g.scorer.Tick(report.Modifiers, g.sim.PowerUps().ScoreFactor())
	g.shake.Update(report.Modifiers.ScreenShake)
	g.shake.NearMiss(report.Frame, g.player.Bounds(), g.sim.Obstacles().Obstacles())
	if g.noticeTTL > 0 {
		g.noticeTTL--
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionUp) {
		g.player.Steer(-1)
	} else if in.Has(core.ActionDown) {
		g.player.Steer(1)
	}
	if in.Has(core.ActionLeft) {
		g.sim.SelectRoute(RouteLeft)
	} else if in.Has(core.ActionRight) {
		g.sim.SelectRoute(RouteRight)
	}
	if in.Has(core.ActionAbility) {
		g.sim.ActivateAbility()
	}
}

// onEvent scores pickups, updates the HUD notice and fans out to subscribers.
func (g *Game) onEvent(e Event) {
	switch ev := e.(type) {
	case CollectibleCollectedEvent:
		g.scorer.Add(ev.Points)
		if ev.Gold {
			g.setNotice("Gold present!")
		}
	case MomentStartedEvent:
		g.setNotice(ev.Moment.String() + "!")
	case RouteDecisionEvent:
		g.setNotice("Fork ahead!")
	case ObstacleCollisionEvent:
		if !ev.Fatal {
			g.setNotice("Shield absorbed a " + ev.Obstacle.String())
		}
	}
	for _, fn := range g.listeners {
		fn(e)
	}
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeTTL = 120
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.scorer != nil {
		score = g.scorer.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register one game per ability with the registry
func init() {
	for _, kind := range AbilityKinds {
		registry.Register("sleigh-"+kind.String(), func() registry.Game {
			return New(kind)
		})
	}
}
