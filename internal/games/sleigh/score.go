package sleigh

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/sleigh-run/internal/config"
	"github.com/vovakirdan/sleigh-run/internal/core"
)

// Scorer accumulates distance points per frame plus pickup points.
type Scorer struct {
	perFrame float64
	total    float64
}

// NewScorer converts a per-second rate to a per-frame one at tickRate.
func NewScorer(perSecond float64, tickRate int) *Scorer {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Scorer{perFrame: perSecond / float64(tickRate)}
}

// Tick adds one frame of distance points.
func (s *Scorer) Tick(mods Modifiers, factor float64) {
	s.total += s.perFrame * mods.Score * factor
}

// Add adds pickup points.
func (s *Scorer) Add(points int) {
	s.total += float64(points)
}

// Score returns the whole-point score.
func (s *Scorer) Score() int {
	return int(s.total)
}

// Reset zeroes the score.
func (s *Scorer) Reset() {
	s.total = 0
}

// Shake is decaying camera shake fed by moments and near misses.
type Shake struct {
	cfg          config.EffectsConfig
	rng          *rand.Rand
	intensity    float64
	dx, dy       float64
	lastNearMiss int
}

// NewShake creates a camera shake with its own jitter source.
func NewShake(cfg config.EffectsConfig, seed int64) *Shake {
	return &Shake{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Reset stops all shaking.
func (c *Shake) Reset(seed int64) {
	c.rng.Seed(seed)
	c.intensity = 0
	c.dx, c.dy = 0, 0
	c.lastNearMiss = 0
}

// Add raises the intensity to at least v.
func (c *Shake) Add(v float64) {
	c.intensity = math.Max(c.intensity, v)
}

// Update applies moment shake, jitters the offset and decays.
func (c *Shake) Update(momentShake float64) {
	if momentShake > 0 {
		c.Add(momentShake * c.cfg.ShakeScale)
	}
	c.dx = (c.rng.Float64() - 0.5) * c.intensity
	c.dy = (c.rng.Float64() - 0.5) * c.intensity

	c.intensity *= c.cfg.ShakeDecay
	if c.intensity < 0.1 {
		c.intensity = 0
		c.dx, c.dy = 0, 0
	}
}

// NearMiss shakes once when an obstacle centre passes close to the player
// horizontally, at most once per cooldown.
func (c *Shake) NearMiss(frame int, player core.Box, obstacles []*Obstacle) bool {
	if frame-c.lastNearMiss <= c.cfg.NearMissCooldown {
		return false
	}
	for _, o := range obstacles {
		d := math.Abs(o.Bounds().CenterX() - player.CenterX())
		if d > c.cfg.NearMissMin && d < c.cfg.NearMissMax {
			c.Add(c.cfg.NearMissShake)
			c.lastNearMiss = frame
			return true
		}
	}
	return false
}

// Intensity returns the current shake strength.
func (c *Shake) Intensity() float64 { return c.intensity }

// Offset returns the jitter in canvas units.
func (c *Shake) Offset() (float64, float64) { return c.dx, c.dy }
