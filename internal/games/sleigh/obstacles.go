package sleigh

import (
	"math/rand"

	"github.com/vovakirdan/sleigh-run/internal/config"
	"github.com/vovakirdan/sleigh-run/internal/core"
)

// ObstacleManager handles spawning, movement, and removal of obstacles.
type ObstacleManager struct {
	obstacles []*Obstacle
	rng       *rand.Rand
	cfg       *config.RunnerConfig
	types     picker[ObstacleType]
	gate      spawnGate
	nextID    int
}

// NewObstacleManager creates an obstacle manager drawing from rng.
func NewObstacleManager(cfg *config.RunnerConfig, rng *rand.Rand) (*ObstacleManager, error) {
	oc := cfg.Obstacles
	types, err := newPicker(
		weighted[ObstacleType]{ObstacleChimney, oc.Chimney.Weight},
		weighted[ObstacleType]{ObstacleSnowman, oc.Snowman.Weight},
		weighted[ObstacleType]{ObstacleTree, oc.Tree.Weight},
		weighted[ObstacleType]{ObstacleCloud, oc.Cloud.Weight},
		weighted[ObstacleType]{ObstacleWindGust, oc.WindGust.Weight},
	)
	if err != nil {
		return nil, err
	}
	return &ObstacleManager{
		obstacles: make([]*Obstacle, 0, 16),
		rng:       rng,
		cfg:       cfg,
		types:     types,
		gate:      spawnGate{rate: oc.SpawnRate, minInterval: oc.MinInterval},
	}, nil
}

// Reset clears all obstacles.
func (om *ObstacleManager) Reset() {
	om.obstacles = om.obstacles[:0]
	om.gate.last = 0
	om.nextID = 0
}

// Update advances behaviors, drifts obstacles left, drops those past the
// left edge and possibly spawns a new one.
func (om *ObstacleManager) Update(frame int, difficulty float64, mods Modifiers) {
	speed := om.cfg.Obstacles.BaseSpeed * difficulty * mods.ObstacleSpeed

	for _, o := range om.obstacles {
		if o.Behavior != nil {
			o.Behavior.advance(o, frame, om.rng)
		}
		o.X -= speed
	}

	// Remove obstacles whose drift position has passed the left edge. A
	// snowman's slide offset does not count.
	valid := om.obstacles[:0]
	for _, o := range om.obstacles {
		if o.X+o.W >= 0 {
			valid = append(valid, o)
		}
	}
	om.obstacles = valid

	if om.gate.ready(frame, difficulty, mods.ObstacleSpawn, om.rng) {
		om.Spawn(om.types.pick(om.rng))
	}
}

func (om *ObstacleManager) kind(t ObstacleType) config.ObstacleKind {
	oc := om.cfg.Obstacles
	switch t {
	case ObstacleChimney:
		return oc.Chimney
	case ObstacleSnowman:
		return oc.Snowman
	case ObstacleTree:
		return oc.Tree
	case ObstacleCloud:
		return oc.Cloud
	default:
		return oc.WindGust
	}
}

// Spawn places a new obstacle of type t at the right edge.
func (om *ObstacleManager) Spawn(t ObstacleType) *Obstacle {
	oc := om.cfg.Obstacles
	k := om.kind(t)
	scale := uniform(om.rng, oc.SizeMin, oc.SizeMax)
	w, h := k.Width*scale, k.Height*scale

	var y float64
	if k.Floating {
		y = uniform(om.rng, k.BandTop, om.cfg.Canvas.Height-h-k.BandBottom)
	} else {
		y = om.cfg.Canvas.Ground() - h - om.rng.Float64()*oc.GroundVariation
	}

	o := &Obstacle{
		ID:    om.nextID,
		Type:  t,
		X:     om.cfg.Canvas.Width,
		Y:     y,
		W:     w,
		H:     h,
		Scale: scale,
	}
	om.nextID++

	b := oc.Behavior
	switch t {
	case ObstacleChimney:
		o.Behavior = &Bob{AnchorY: y, Amplitude: b.BobAmplitude, Rate: b.BobRate, PhaseScale: b.BobPhaseScale}
	case ObstacleSnowman:
		o.Behavior = &Slide{Amplitude: b.SlideAmplitude, Rate: b.SlideRate}
	case ObstacleWindGust:
		force := b.WindForce
		if om.rng.Intn(2) == 0 {
			force = -force
		}
		o.Behavior = &Wind{Force: force, limit: b.WindParticles}
	}

	om.obstacles = append(om.obstacles, o)
	return o
}

// Obstacles returns the live obstacles.
func (om *ObstacleManager) Obstacles() []*Obstacle {
	return om.obstacles
}

// WindForce returns the force of the first gust overlapping b, or 0.
func (om *ObstacleManager) WindForce(b core.Box) float64 {
	for _, o := range om.obstacles {
		if w, ok := o.Wind(); ok && b.Overlaps(o.Bounds()) {
			return w.Force
		}
	}
	return 0
}

// sweep drops obstacles consumed during collision resolution.
func (om *ObstacleManager) sweep() {
	valid := om.obstacles[:0]
	for _, o := range om.obstacles {
		if !o.consumed {
			valid = append(valid, o)
		}
	}
	om.obstacles = valid
}
