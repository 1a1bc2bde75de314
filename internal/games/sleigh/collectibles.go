package sleigh

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/sleigh-run/internal/config"
)

// CollectibleManager handles spawning, movement, and removal of pickups.
type CollectibleManager struct {
	items  []*Collectible
	rng    *rand.Rand
	cfg    *config.RunnerConfig
	types  picker[CollectibleType]
	gate   spawnGate
	nextID int
}

// NewCollectibleManager creates a collectible manager drawing from rng.
func NewCollectibleManager(cfg *config.RunnerConfig, rng *rand.Rand) (*CollectibleManager, error) {
	cc := cfg.Collectibles
	types, err := newPicker(
		weighted[CollectibleType]{CollectibleGift, cc.Weights.Gift},
		weighted[CollectibleType]{CollectibleSlowMotion, cc.Weights.SlowMotion},
		weighted[CollectibleType]{CollectibleShield, cc.Weights.Shield},
		weighted[CollectibleType]{CollectibleDoubleScore, cc.Weights.DoubleScore},
	)
	if err != nil {
		return nil, err
	}
	return &CollectibleManager{
		items: make([]*Collectible, 0, 8),
		rng:   rng,
		cfg:   cfg,
		types: types,
		gate:  spawnGate{rate: cc.SpawnRate, minInterval: cc.MinInterval},
	}, nil
}

// Reset clears all collectibles.
func (cm *CollectibleManager) Reset() {
	cm.items = cm.items[:0]
	cm.gate.last = 0
	cm.nextID = 0
}

// Update floats and drifts pickups, drops those past the left edge and
// possibly spawns a new one.
func (cm *CollectibleManager) Update(frame int, difficulty float64, mods Modifiers) {
	cc := cm.cfg.Collectibles
	speed := cc.Speed * mods.Ambient

	for _, c := range cm.items {
		c.Y += math.Sin(float64(frame)*cc.FloatRate+c.Phase) * cc.FloatAmount
		c.X -= speed
	}

	valid := cm.items[:0]
	for _, c := range cm.items {
		if c.Bounds().Right() >= 0 {
			valid = append(valid, c)
		}
	}
	cm.items = valid

	if cm.gate.ready(frame, difficulty, mods.CollectibleSpawn, cm.rng) {
		cm.Spawn(cm.types.pick(cm.rng))
	}
}

// Spawn places a new collectible of type t at the right edge.
func (cm *CollectibleManager) Spawn(t CollectibleType) *Collectible {
	cc := cm.cfg.Collectibles
	scale := uniform(cm.rng, cc.SizeMin, cc.SizeMax)
	w, h := cc.Width*scale, cc.Height*scale

	c := &Collectible{
		ID:    cm.nextID,
		Type:  t,
		X:     cm.cfg.Canvas.Width,
		Y:     uniform(cm.rng, cc.BandTop, cm.cfg.Canvas.Height-h-cc.BandBottom),
		W:     w,
		H:     h,
		Scale: scale,
		Phase: cm.rng.Float64() * 1000,
	}
	if t == CollectibleGift {
		c.Gold = cm.rng.Float64() < cc.GoldChance
	}
	cm.nextID++

	cm.items = append(cm.items, c)
	return c
}

// Collectibles returns the live pickups.
func (cm *CollectibleManager) Collectibles() []*Collectible {
	return cm.items
}

func (cm *CollectibleManager) sweep() {
	valid := cm.items[:0]
	for _, c := range cm.items {
		if !c.consumed {
			valid = append(valid, c)
		}
	}
	cm.items = valid
}
