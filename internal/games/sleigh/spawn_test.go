package sleigh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/sleigh-run/internal/config"
	"github.com/vovakirdan/sleigh-run/internal/core"
)

func TestCollectibleWeightsConverge(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cm, err := NewCollectibleManager(&cfg, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}

	const draws = 100_000
	counts := make(map[CollectibleType]int)
	for i := 0; i < draws; i++ {
		counts[cm.types.pick(cm.rng)]++
	}

	want := map[CollectibleType]float64{
		CollectibleGift:        0.60,
		CollectibleSlowMotion:  0.15,
		CollectibleShield:      0.15,
		CollectibleDoubleScore: 0.10,
	}
	for typ, p := range want {
		got := float64(counts[typ]) / draws
		if math.Abs(got-p) > 0.01 {
			t.Errorf("%s frequency = %.4f, expected %.2f ± 0.01", typ, got, p)
		}
	}
}

func TestObstacleWeightsUniform(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	om, err := NewObstacleManager(&cfg, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}

	const draws = 100_000
	counts := make(map[ObstacleType]int)
	for i := 0; i < draws; i++ {
		counts[om.types.pick(om.rng)]++
	}
	for _, typ := range []ObstacleType{ObstacleChimney, ObstacleSnowman, ObstacleTree, ObstacleCloud, ObstacleWindGust} {
		got := float64(counts[typ]) / draws
		if math.Abs(got-0.2) > 0.01 {
			t.Errorf("%s frequency = %.4f, expected 0.20 ± 0.01", typ, got)
		}
	}
}

func TestPickerSkipsZeroWeights(t *testing.T) {
	p, err := newPicker(
		weighted[string]{"never", 0},
		weighted[string]{"always", 3},
	)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if got := p.pick(rng); got != "always" {
			t.Fatalf("picked %q with zero weight", got)
		}
	}

	if _, err := newPicker(weighted[string]{"a", 0}); err == nil {
		t.Error("empty weight table should be rejected")
	}
}

func TestSpawnGateInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := spawnGate{rate: 1, minInterval: 30}

	// With rate 1 the draw always passes, so only the interval gates.
	for frame := 1; frame < 30; frame++ {
		if g.ready(frame, 1, 1, rng) {
			t.Fatalf("spawned at frame %d before the interval", frame)
		}
	}
	if !g.ready(30, 1, 1, rng) {
		t.Fatal("should spawn once the interval passed")
	}
	if g.ready(31, 1, 1, rng) {
		t.Error("interval should restart after a spawn")
	}

	// Difficulty shortens the interval.
	if !g.ready(45, 2, 1, rng) {
		t.Error("difficulty 2 should halve the interval")
	}

	// A zero multiplier blocks spawning entirely.
	if g.ready(1000, 1, 0, rng) {
		t.Error("zero multiplier should never spawn")
	}
}

func TestObstacleDriftMonotonic(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	left := RouteEffects{Spawn: cfg.Route.Left.Spawn, Speed: cfg.Route.Left.Speed, GiftValue: cfg.Route.Left.GiftValue, Score: cfg.Route.Left.Score}

	tests := []struct {
		name       string
		difficulty float64
		mods       Modifiers
	}{
		{"neutral", 1, Compose(neutralRoute, neutralMoment, neutralAbility)},
		{"left route slowed", 1.4, Compose(left, neutralMoment, neutralAbility).Slowed(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			om, err := NewObstacleManager(&cfg, rand.New(rand.NewSource(11)))
			if err != nil {
				t.Fatal(err)
			}
			for _, typ := range []ObstacleType{ObstacleChimney, ObstacleSnowman, ObstacleTree, ObstacleCloud, ObstacleWindGust} {
				om.Spawn(typ)
			}
			om.gate.rate = 0 // no new spawns

			want := cfg.Obstacles.BaseSpeed * tt.difficulty * tt.mods.ObstacleSpeed
			prev := make(map[int]float64)
			for _, o := range om.Obstacles() {
				prev[o.ID] = o.X
			}
			for frame := 1; frame <= 2000 && len(om.Obstacles()) > 0; frame++ {
				om.Update(frame, tt.difficulty, tt.mods)
				for _, o := range om.Obstacles() {
					if step := prev[o.ID] - o.X; math.Abs(step-want) > 1e-9 {
						t.Fatalf("frame %d: %s moved %v, want %v", frame, o.Type, step, want)
					}
					prev[o.ID] = o.X
					if s, ok := o.Behavior.(*Slide); ok && math.Abs(s.Offset) > s.Amplitude {
						t.Fatalf("slide offset %v exceeds amplitude %v", s.Offset, s.Amplitude)
					}
				}
			}

			if n := len(om.Obstacles()); n != 0 {
				t.Errorf("%d obstacles left after drifting off screen", n)
			}
		})
	}
}

func TestSnowmanRemovedAtDriftEdge(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	om, err := NewObstacleManager(&cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	mods := Compose(neutralRoute, neutralMoment, neutralAbility)
	speed := cfg.Obstacles.BaseSpeed * mods.ObstacleSpeed

	o := om.Spawn(ObstacleSnowman)
	om.gate.rate = 0

	for frame := 1; frame <= 2000; frame++ {
		next := o.X - speed
		om.Update(frame, 1, mods)
		present := len(om.Obstacles()) == 1
		if next+o.W >= 0 {
			if !present {
				t.Fatalf("frame %d: snowman removed while x+width=%v", frame, next+o.W)
			}
			continue
		}
		if present {
			t.Fatalf("frame %d: snowman kept with x+width=%v", frame, next+o.W)
		}
		return
	}
	t.Fatal("snowman never left the screen")
}

func TestObstaclePlacement(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	om, err := NewObstacleManager(&cfg, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	oc := cfg.Obstacles
	ground := cfg.Canvas.Ground()

	for i := 0; i < 500; i++ {
		for _, typ := range []ObstacleType{ObstacleChimney, ObstacleSnowman, ObstacleTree, ObstacleCloud, ObstacleWindGust} {
			o := om.Spawn(typ)
			k := om.kind(typ)

			if o.X != cfg.Canvas.Width {
				t.Fatalf("%s spawned at x=%v, expected %v", typ, o.X, cfg.Canvas.Width)
			}
			if o.Scale < oc.SizeMin || o.Scale >= oc.SizeMax {
				t.Fatalf("%s scale %v outside [%v, %v)", typ, o.Scale, oc.SizeMin, oc.SizeMax)
			}
			if math.Abs(o.W-k.Width*o.Scale) > 1e-9 || math.Abs(o.H-k.Height*o.Scale) > 1e-9 {
				t.Fatalf("%s size %vx%v does not match scale %v", typ, o.W, o.H, o.Scale)
			}

			if k.Floating {
				if o.Y < k.BandTop || o.Y > cfg.Canvas.Height-o.H-k.BandBottom {
					t.Fatalf("%s y=%v outside its band", typ, o.Y)
				}
			} else {
				bottom := o.Y + o.H
				if bottom > ground || bottom < ground-oc.GroundVariation {
					t.Fatalf("%s bottom=%v not within ground variation", typ, bottom)
				}
			}
		}
		om.Reset()
	}
}

func TestBehaviorsBuiltAtSpawn(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	om, err := NewObstacleManager(&cfg, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := om.Spawn(ObstacleChimney).Behavior.(*Bob); !ok {
		t.Error("chimney should bob")
	}
	if _, ok := om.Spawn(ObstacleSnowman).Behavior.(*Slide); !ok {
		t.Error("snowman should slide")
	}
	if om.Spawn(ObstacleTree).Behavior != nil || om.Spawn(ObstacleCloud).Behavior != nil {
		t.Error("trees and clouds are static")
	}

	signs := map[float64]int{}
	for i := 0; i < 200; i++ {
		w, ok := om.Spawn(ObstacleWindGust).Wind()
		if !ok {
			t.Fatal("wind gust should carry a wind behavior")
		}
		signs[w.Force]++
	}
	force := cfg.Obstacles.Behavior.WindForce
	if signs[force] == 0 || signs[-force] == 0 || len(signs) != 2 {
		t.Errorf("wind force should be ±%v, got %v", force, signs)
	}
}

func TestWindForceQuery(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	om, err := NewObstacleManager(&cfg, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}

	gust := om.Spawn(ObstacleWindGust)
	gust.X, gust.Y = 100, 100
	w, _ := gust.Wind()

	inside := core.NewBox(120, 120, 10, 10)
	outside := core.NewBox(500, 500, 10, 10)
	if got := om.WindForce(inside); got != w.Force {
		t.Errorf("WindForce inside = %v, expected %v", got, w.Force)
	}
	if got := om.WindForce(outside); got != 0 {
		t.Errorf("WindForce outside = %v, expected 0", got)
	}
}

func TestWindParticlesBounded(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	om, err := NewObstacleManager(&cfg, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatal(err)
	}
	om.gate.rate = 0
	gust := om.Spawn(ObstacleWindGust)
	w, _ := gust.Wind()

	mods := Compose(neutralRoute, neutralMoment, neutralAbility)
	for frame := 1; frame <= 100; frame++ {
		om.Update(frame, 1, mods)
		if len(w.Particles) > cfg.Obstacles.Behavior.WindParticles {
			t.Fatalf("%d particles exceed limit", len(w.Particles))
		}
	}
	if len(w.Particles) == 0 {
		t.Error("gust should emit particles")
	}
}

func TestCollectibleSpawn(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Collectibles.GoldChance = 1
	cm, err := NewCollectibleManager(&cfg, rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatal(err)
	}
	cc := cfg.Collectibles

	gift := cm.Spawn(CollectibleGift)
	if !gift.Gold {
		t.Error("gold chance 1 should always produce gold gifts")
	}
	shield := cm.Spawn(CollectibleShield)
	if shield.Gold {
		t.Error("only gifts can be gold")
	}
	for _, c := range []*Collectible{gift, shield} {
		if c.X != cfg.Canvas.Width {
			t.Errorf("spawned at x=%v", c.X)
		}
		if c.Y < cc.BandTop || c.Y > cfg.Canvas.Height-c.H-cc.BandBottom {
			t.Errorf("y=%v outside band", c.Y)
		}
	}

	mods := Compose(neutralRoute, neutralMoment, neutralAbility).Slowed(0.5)
	x := gift.X
	cm.gate.rate = 0
	cm.Update(1, 1, mods)
	if got, want := gift.X, x-cc.Speed*0.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("collectible x = %v, expected %v", got, want)
	}
}
