package sleigh

import (
	"testing"

	"github.com/vovakirdan/sleigh-run/internal/config"
	"github.com/vovakirdan/sleigh-run/internal/core"
)

// stubBody is a fixed box that ignores motion.
type stubBody struct {
	box   core.Box
	moves int
	wind  float64
}

func (b *stubBody) Move(_ Modifiers, wind float64) {
	b.moves++
	b.wind = wind
}

func (b *stubBody) Bounds() core.Box { return b.box }

// farAway never touches anything on the canvas.
func farAway() *stubBody {
	return &stubBody{box: core.NewBox(-10_000, -10_000, 1, 1)}
}

func newTestSim(t *testing.T, kind AbilityKind, opts ...Option) *Simulation {
	t.Helper()
	s, err := NewSimulation(config.DefaultRunnerConfig(), kind, 12345, opts...)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	return s
}

// placeObstacle spawns a static obstacle at an exact position.
func placeObstacle(s *Simulation, typ ObstacleType, x, y float64) *Obstacle {
	o := s.obstacles.Spawn(typ)
	o.X, o.Y, o.W, o.H = x, y, 50, 50
	o.Behavior = nil
	return o
}

func placeCollectible(s *Simulation, typ CollectibleType, x, y float64) *Collectible {
	c := s.collectibles.Spawn(typ)
	c.X, c.Y = x, y
	return c
}

func TestNewSimulationRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Collectibles.Weights = config.Weights{}
	if _, err := NewSimulation(cfg, AbilityDash, 1); err == nil {
		t.Error("empty weight table should be rejected at construction")
	}
}

func TestRouteScenario(t *testing.T) {
	s := newTestSim(t, AbilityDash)
	body := farAway()
	cfg := s.Config().Route

	var sawDecision bool
	for s.Frame() < cfg.DecisionInterval {
		r := s.Step(body)
		for _, e := range r.Events {
			if _, ok := e.(RouteDecisionEvent); ok {
				sawDecision = true
				if r.Frame != cfg.DecisionInterval {
					t.Errorf("fork opened at frame %d", r.Frame)
				}
			}
		}
	}
	if !sawDecision || !s.Route().Deciding() {
		t.Fatal("fork should be open at frame 600")
	}

	for s.Frame() < cfg.DecisionInterval+cfg.DecisionWindow {
		s.Step(body)
	}
	if s.Route().Route() != RouteRight || s.Route().Remaining() != cfg.Duration {
		t.Errorf("at frame %d: route=%v remaining=%d", s.Frame(), s.Route().Route(), s.Route().Remaining())
	}

	r := s.Step(body)
	if r.Modifiers.ObstacleSpawn != cfg.Right.Spawn {
		t.Errorf("spawn modifier = %v, expected right route %v", r.Modifiers.ObstacleSpawn, cfg.Right.Spawn)
	}
	if r.Modifiers.GiftValue != cfg.Right.GiftValue {
		t.Errorf("gift value = %v, expected right route %v", r.Modifiers.GiftValue, cfg.Right.GiftValue)
	}
}

func TestCommandsBufferEvents(t *testing.T) {
	var heard []Event
	s := newTestSim(t, AbilityDash, WithListener(func(e Event) { heard = append(heard, e) }))
	body := farAway()

	if s.SelectRoute(RouteLeft) {
		t.Error("SelectRoute should be ignored without a fork")
	}
	if !s.ActivateAbility() {
		t.Fatal("ability should activate at start")
	}
	if s.ActivateAbility() {
		t.Error("second activation should be ignored while active")
	}
	if len(heard) != 1 {
		t.Fatalf("listener heard %d events, expected 1", len(heard))
	}

	r := s.Step(body)
	found := false
	for _, e := range r.Events {
		if ev, ok := e.(AbilityActivatedEvent); ok && ev.Ability == AbilityDash && ev.Uses == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("step report should carry the activation, got %v", r.Events)
	}
	if r.Modifiers.Dash != s.Config().Ability.DashSpeed {
		t.Errorf("dash modifier = %v", r.Modifiers.Dash)
	}

	if next := s.Step(body); len(next.Events) != 0 {
		t.Errorf("events should not repeat, got %v", next.Events)
	}
}

func TestSlowMotionScalesWorld(t *testing.T) {
	s := newTestSim(t, AbilitySlowTime)
	body := farAway()

	s.PowerUps().Activate(PowerUpSlowMotion)
	r := s.Step(body)
	if r.Modifiers.Ambient != s.Config().PowerUps.SlowFactor || r.Modifiers.ObstacleSpeed != s.Config().PowerUps.SlowFactor {
		t.Errorf("slow motion modifiers = %+v", r.Modifiers)
	}

	s.ActivateAbility()
	r = s.Step(body)
	want := s.Config().Ability.SlowTimeFactor * s.Config().PowerUps.SlowFactor
	if r.Modifiers.Ambient != want {
		t.Errorf("stacked slow ambient = %v, expected %v", r.Modifiers.Ambient, want)
	}
}

func TestShieldArbitration(t *testing.T) {
	s := newTestSim(t, AbilityShield)
	body := &stubBody{box: core.NewBox(100, 300, 60, 40)}
	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	s.ActivateAbility()
	s.PowerUps().Activate(PowerUpShield)
	events = nil

	placeObstacle(s, ObstacleChimney, 110, 290)
	placeObstacle(s, ObstacleTree, 120, 300)
	s.resolve(body.Bounds(), s.Modifiers())

	if s.Over() {
		t.Fatal("two shields should absorb two hits")
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 collision events, got %v", events)
	}
	first, second := events[0].(ObstacleCollisionEvent), events[1].(ObstacleCollisionEvent)
	if first.Fatal || first.Source != ShieldAbility {
		t.Errorf("first hit = %+v, expected ability shield", first)
	}
	if second.Fatal || second.Source != ShieldPowerUp {
		t.Errorf("second hit = %+v, expected power-up shield", second)
	}
	if n := len(s.Obstacles().Obstacles()); n != 0 {
		t.Errorf("absorbed obstacles should be removed, %d left", n)
	}
	if s.Ability().CooldownRemaining() != s.Config().Ability.Cooldown {
		t.Error("consumed ability shield should start the cooldown")
	}

	// Both shields are spent; the next hit is fatal.
	events = nil
	placeObstacle(s, ObstacleSnowman, 100, 300)
	s.resolve(body.Bounds(), s.Modifiers())
	if !s.Over() {
		t.Fatal("hit without shield should end the run")
	}
	if ev := events[0].(ObstacleCollisionEvent); !ev.Fatal || ev.Source != ShieldNone {
		t.Errorf("fatal hit = %+v", ev)
	}
}

func TestSingleShieldSecondHitFatal(t *testing.T) {
	s := newTestSim(t, AbilityDash)
	body := &stubBody{box: core.NewBox(100, 300, 60, 40)}
	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	s.PowerUps().Activate(PowerUpShield)
	placeObstacle(s, ObstacleChimney, 100, 300)
	placeObstacle(s, ObstacleTree, 110, 300)
	placeCollectible(s, CollectibleGift, 100, 300)

	s.resolve(body.Bounds(), s.Modifiers())

	if !s.Over() {
		t.Fatal("second overlapping obstacle should be fatal")
	}
	if len(events) != 2 {
		t.Fatalf("expected absorb then fatal, got %v", events)
	}
	if ev := events[0].(ObstacleCollisionEvent); ev.Fatal || ev.Source != ShieldPowerUp {
		t.Errorf("first event = %+v", ev)
	}
	if ev := events[1].(ObstacleCollisionEvent); !ev.Fatal {
		t.Errorf("second event = %+v", ev)
	}
	if n := len(s.Collectibles().Collectibles()); n != 1 {
		t.Errorf("pickups are not processed after a fatal hit, %d left", n)
	}

	// Step is a no-op once the run is over.
	frame := s.Frame()
	r := s.Step(body)
	if !r.Over || r.Frame != frame || len(r.Events) != 0 {
		t.Errorf("step after game over = %+v", r)
	}
	if s.ActivateAbility() {
		t.Error("commands are ignored after game over")
	}
}

func TestWindZonesNeverCollide(t *testing.T) {
	s := newTestSim(t, AbilityDash)
	body := &stubBody{box: core.NewBox(100, 300, 60, 40)}

	gust := s.obstacles.Spawn(ObstacleWindGust)
	gust.X, gust.Y = 90, 280
	s.resolve(body.Bounds(), s.Modifiers())

	if s.Over() {
		t.Error("wind gusts must not end the run")
	}
	w, _ := gust.Wind()
	if got := s.Obstacles().WindForce(body.Bounds()); got != w.Force {
		t.Errorf("wind force = %v, expected %v", got, w.Force)
	}
}

func TestWindReadAfterDrift(t *testing.T) {
	s := newTestSim(t, AbilityDash)
	body := &stubBody{box: core.NewBox(100, 300, 60, 40)}

	// The gust only touches the sleigh once this step's drift has moved it.
	gust := s.obstacles.Spawn(ObstacleWindGust)
	gust.X, gust.Y = body.box.Right()+1, 280
	if s.Obstacles().WindForce(body.Bounds()) != 0 {
		t.Fatal("gust should not overlap before the step")
	}

	s.Step(body)
	w, _ := gust.Wind()
	if body.wind != w.Force {
		t.Errorf("wind passed to Move = %v, expected %v", body.wind, w.Force)
	}
}

func TestPickupRewards(t *testing.T) {
	tests := []struct {
		name   string
		typ    CollectibleType
		route  Route
		double bool
		want   int
	}{
		{"plain gift", CollectibleGift, RouteNeutral, false, 50},
		{"left route gift", CollectibleGift, RouteLeft, false, 100},
		{"doubled left gift", CollectibleGift, RouteLeft, true, 200},
		{"power-up", CollectibleShield, RouteNeutral, false, 100},
		{"double score doubles itself", CollectibleDoubleScore, RouteNeutral, false, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, AbilityDash)
			body := &stubBody{box: core.NewBox(100, 300, 60, 40)}
			var got []CollectibleCollectedEvent
			s.Subscribe(func(e Event) {
				if ev, ok := e.(CollectibleCollectedEvent); ok {
					got = append(got, ev)
				}
			})

			if tt.double {
				s.PowerUps().Activate(PowerUpDoubleScore)
			}
			route := neutralRoute
			if tt.route == RouteLeft {
				route = routeEffects(s.Config().Route.Left)
			}
			mods := Compose(route, neutralMoment, neutralAbility)

			placeCollectible(s, tt.typ, 110, 305)
			s.resolve(body.Bounds(), mods)

			if len(got) != 1 {
				t.Fatalf("expected one pickup event, got %v", got)
			}
			if got[0].Points != tt.want || got[0].Type != tt.typ {
				t.Errorf("pickup = %+v, expected %d points", got[0], tt.want)
			}
			if kind, ok := tt.typ.PowerUp(); ok && !s.PowerUps().Active(kind) {
				t.Errorf("%s should be active after pickup", kind)
			}
			if n := len(s.Collectibles().Collectibles()); n != 0 {
				t.Errorf("collected item should be removed, %d left", n)
			}
		})
	}
}

func TestSimulationDeterminism(t *testing.T) {
	run := func() (uint64, int) {
		s := newTestSim(t, AbilityShield)
		body := NewPlayer(s.Config().Player, s.Config().Canvas)
		for i := 0; i < 3000 && !s.Over(); i++ {
			if i%200 == 50 {
				s.ActivateAbility()
			}
			if i%2 == 0 {
				body.Steer(-1)
			} else if i%7 == 0 {
				body.Steer(1)
			}
			s.Step(body)
		}
		snap := s.Snapshot()
		return snap.Hash(), s.Frame()
	}

	h1, f1 := run()
	h2, f2 := run()
	if h1 != h2 || f1 != f2 {
		t.Errorf("determinism failed: (%d, %d) vs (%d, %d)", h1, f1, h2, f2)
	}
}

func TestSimulationReset(t *testing.T) {
	s := newTestSim(t, AbilityDash)
	body := farAway()
	for i := 0; i < 700; i++ {
		s.Step(body)
	}
	s.ActivateAbility()
	s.Reset(12345)

	if s.Frame() != 0 || s.Over() {
		t.Error("reset should restart the frame counter")
	}
	if s.Route().Route() != RouteNeutral || s.Route().Deciding() {
		t.Error("reset should return the route to neutral")
	}
	if !s.Ability().Ready() {
		t.Error("reset should make the ability ready")
	}
	if len(s.Obstacles().Obstacles()) != 0 || len(s.Collectibles().Collectibles()) != 0 {
		t.Error("reset should clear entities")
	}
}

func TestBodyReceivesWind(t *testing.T) {
	s := newTestSim(t, AbilityDash)
	body := &stubBody{box: core.NewBox(100, 300, 60, 40)}

	gust := s.obstacles.Spawn(ObstacleWindGust)
	gust.X, gust.Y, gust.W, gust.H = 50, 250, 200, 200
	w, _ := gust.Wind()

	r := s.Step(body)
	if body.moves != 1 || body.wind != w.Force || r.WindForce != w.Force {
		t.Errorf("body wind = %v (moves %d), report %v, expected %v", body.wind, body.moves, r.WindForce, w.Force)
	}
}
