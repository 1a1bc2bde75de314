package sleigh

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sleigh-run/internal/config"
	"github.com/vovakirdan/sleigh-run/internal/core"
)

// Controlled is the body steered through the lane.
type Controlled interface {
	// Move applies one frame of motion under the composed modifiers and
	// the wind force acting on the body.
	Move(mods Modifiers, wind float64)
	// Bounds returns the collision box.
	Bounds() core.Box
}

// StepReport summarizes one simulation step.
type StepReport struct {
	Frame      int
	Modifiers  Modifiers
	Difficulty float64
	WindForce  float64
	Events     []Event
	Over       bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithListener registers fn to receive every event as it happens.
func WithListener(fn func(Event)) Option {
	return func(s *Simulation) {
		s.listeners = append(s.listeners, fn)
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// Simulation owns the temporal machines and entity managers of one run.
type Simulation struct {
	cfg  config.RunnerConfig
	kind AbilityKind
	rng  *rand.Rand
	log  *log.Logger

	difficulty   *config.DifficultyManager
	route        *RouteManager
	moments      *MomentManager
	ability      *AbilityManager
	powerUps     *PowerUps
	obstacles    *ObstacleManager
	collectibles *CollectibleManager

	frame     int
	over      bool
	mods      Modifiers
	wind      float64
	pending   []Event
	listeners []func(Event)
}

// NewSimulation builds a simulation for the given ability. The config is
// validated; invalid tables are rejected here rather than mid-run.
func NewSimulation(cfg config.RunnerConfig, kind AbilityKind, seed int64, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	powerUps, err := NewPowerUps(cfg.PowerUps)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:      cfg,
		kind:     kind,
		rng:      rand.New(rand.NewSource(seed)),
		log:      log.New(io.Discard),
		powerUps: powerUps,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.difficulty = config.NewDifficultyManager(s.cfg.Difficulty)
	s.route = NewRouteManager(s.cfg.Route)
	s.moments = NewMomentManager(s.cfg.Moments, s.rng)
	s.ability = NewAbilityManager(kind, s.cfg.Ability)
	if s.obstacles, err = NewObstacleManager(&s.cfg, s.rng); err != nil {
		return nil, err
	}
	if s.collectibles, err = NewCollectibleManager(&s.cfg, s.rng); err != nil {
		return nil, err
	}
	s.Reset(seed)
	return s, nil
}

// Reset starts a fresh run with the given seed. Listeners are kept.
func (s *Simulation) Reset(seed int64) {
	s.rng.Seed(seed)
	s.route.Reset()
	s.moments.Reset()
	s.ability.Reset()
	s.powerUps.Reset()
	s.obstacles.Reset()
	s.collectibles.Reset()
	s.frame = 0
	s.over = false
	s.wind = 0
	s.pending = nil
	s.mods = Compose(neutralRoute, neutralMoment, neutralAbility)
}

// Subscribe adds a listener after construction.
func (s *Simulation) Subscribe(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

// Step advances the world by one frame. After a fatal collision it does nothing.
func (s *Simulation) Step(body Controlled) StepReport {
	if s.over {
		return StepReport{Frame: s.frame, Modifiers: s.mods, Over: true}
	}

	s.frame++

	s.powerUps.Update(s.emit)
	s.route.Update(s.frame, s.emit)
	s.moments.Update(s.frame, s.emit)
	s.ability.Update()

	mods := Compose(s.route.Effects(), s.moments.Effects(), s.ability.Effects())
	if s.powerUps.Active(PowerUpSlowMotion) {
		mods = mods.Slowed(s.cfg.PowerUps.SlowFactor)
	}
	s.mods = mods
	difficulty := s.difficulty.Multiplier(s.frame)

	s.obstacles.Update(s.frame, difficulty, mods)
	s.collectibles.Update(s.frame, difficulty, mods)

	// Wind is read from this step's zone positions.
	s.wind = s.obstacles.WindForce(body.Bounds())
	body.Move(mods, s.wind)
	s.resolve(body.Bounds(), mods)

	report := StepReport{
		Frame:      s.frame,
		Modifiers:  mods,
		Difficulty: difficulty,
		WindForce:  s.wind,
		Events:     s.pending,
		Over:       s.over,
	}
	s.pending = nil
	return report
}

// SelectRoute takes a branch while a fork is open.
func (s *Simulation) SelectRoute(r Route) bool {
	if s.over || !s.route.Select(r) {
		return false
	}
	s.emit(RouteSelectedEvent{Route: r})
	return true
}

// ActivateAbility fires the session ability if it is ready.
func (s *Simulation) ActivateAbility() bool {
	if s.over || !s.ability.Activate() {
		return false
	}
	s.emit(AbilityActivatedEvent{Ability: s.kind, Uses: s.ability.Uses()})
	return true
}

// Emit delivers an event raised outside the step, such as the end of a run,
// to listeners only. It never appears in a StepReport.
func (s *Simulation) Emit(e Event) {
	s.notify(e)
}

// emit queues e for the next StepReport and notifies listeners.
func (s *Simulation) emit(e Event) {
	s.pending = append(s.pending, e)
	s.notify(e)
}

func (s *Simulation) notify(e Event) {
	s.logEvent(e)
	for _, fn := range s.listeners {
		fn(e)
	}
}

func (s *Simulation) logEvent(e Event) {
	switch ev := e.(type) {
	case MomentStartedEvent:
		s.log.Debug("moment started", "frame", s.frame, "moment", ev.Moment, "duration", ev.Duration)
	case MomentEndedEvent:
		s.log.Debug("moment ended", "frame", s.frame, "moment", ev.Moment)
	case RouteDecisionEvent:
		s.log.Debug("route fork", "frame", s.frame, "window", ev.Window)
	case RouteSelectedEvent:
		s.log.Debug("route selected", "frame", s.frame, "route", ev.Route, "auto", ev.Auto)
	case AbilityActivatedEvent:
		s.log.Debug("ability activated", "frame", s.frame, "ability", ev.Ability, "uses", ev.Uses)
	case PowerUpExpiredEvent:
		s.log.Debug("power-up expired", "frame", s.frame, "power_up", ev.PowerUp)
	case ObstacleCollisionEvent:
		if ev.Fatal {
			s.log.Debug("run over", "frame", s.frame, "obstacle", ev.Obstacle)
		} else {
			s.log.Debug("shield absorbed hit", "frame", s.frame, "obstacle", ev.Obstacle, "source", ev.Source)
		}
	}
}

// Frame returns the number of steps taken.
func (s *Simulation) Frame() int { return s.frame }

// Over reports whether the run has ended.
func (s *Simulation) Over() bool { return s.over }

// Modifiers returns the modifiers composed in the last step.
func (s *Simulation) Modifiers() Modifiers { return s.mods }

// WindForce returns the wind acting on the body in the last step.
func (s *Simulation) WindForce() float64 { return s.wind }

// Difficulty returns the current difficulty multiplier.
func (s *Simulation) Difficulty() float64 { return s.difficulty.Multiplier(s.frame) }

// Config returns the run configuration.
func (s *Simulation) Config() *config.RunnerConfig { return &s.cfg }

// Route returns the route state machine.
func (s *Simulation) Route() *RouteManager { return s.route }

// Moments returns the moment state machine.
func (s *Simulation) Moments() *MomentManager { return s.moments }

// Ability returns the ability state machine.
func (s *Simulation) Ability() *AbilityManager { return s.ability }

// PowerUps returns the power-up timers.
func (s *Simulation) PowerUps() *PowerUps { return s.powerUps }

// Obstacles returns the obstacle manager.
func (s *Simulation) Obstacles() *ObstacleManager { return s.obstacles }

// Collectibles returns the collectible manager.
func (s *Simulation) Collectibles() *CollectibleManager { return s.collectibles }
