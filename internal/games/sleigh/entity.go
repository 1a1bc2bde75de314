package sleigh

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/sleigh-run/internal/core"
)

// ObstacleType enumerates the hazards.
type ObstacleType int

const (
	ObstacleChimney ObstacleType = iota
	ObstacleSnowman
	ObstacleTree
	ObstacleCloud
	ObstacleWindGust
)

func (t ObstacleType) String() string {
	switch t {
	case ObstacleChimney:
		return "chimney"
	case ObstacleSnowman:
		return "snowman"
	case ObstacleTree:
		return "tree"
	case ObstacleCloud:
		return "cloud"
	case ObstacleWindGust:
		return "wind gust"
	default:
		return "?"
	}
}

// CollectibleType enumerates the pickups.
type CollectibleType int

const (
	CollectibleGift CollectibleType = iota
	CollectibleSlowMotion
	CollectibleShield
	CollectibleDoubleScore
)

func (t CollectibleType) String() string {
	switch t {
	case CollectibleGift:
		return "gift"
	case CollectibleSlowMotion:
		return "slow motion"
	case CollectibleShield:
		return "shield"
	case CollectibleDoubleScore:
		return "double score"
	default:
		return "?"
	}
}

// PowerUp maps a power-up collectible to the power-up it grants.
func (t CollectibleType) PowerUp() (PowerUpKind, bool) {
	switch t {
	case CollectibleSlowMotion:
		return PowerUpSlowMotion, true
	case CollectibleShield:
		return PowerUpShield, true
	case CollectibleDoubleScore:
		return PowerUpDoubleScore, true
	default:
		return 0, false
	}
}

// Behavior is the per-type motion of an obstacle, fixed at spawn.
type Behavior interface {
	advance(o *Obstacle, frame int, rng *rand.Rand)
}

// Bob moves a chimney up and down around its spawn height.
type Bob struct {
	AnchorY    float64
	Amplitude  float64
	Rate       float64
	PhaseScale float64
}

func (b *Bob) advance(o *Obstacle, frame int, _ *rand.Rand) {
	o.Y = b.AnchorY + math.Sin(float64(frame)*b.Rate+o.X*b.PhaseScale)*b.Amplitude
}

// Slide sways a snowman sideways around its drift position.
// Offset stays within [-Amplitude, Amplitude].
type Slide struct {
	Amplitude float64
	Rate      float64
	Offset    float64
}

func (s *Slide) advance(_ *Obstacle, frame int, _ *rand.Rand) {
	s.Offset = math.Sin(float64(frame)*s.Rate) * s.Amplitude
}

// Particle is a snow streak inside a wind gust.
type Particle struct {
	X, Y  float64
	Speed float64
	Life  float64
}

// Wind is a non-solid zone pushing the sleigh vertically.
type Wind struct {
	Force     float64
	Particles []Particle
	limit     int
}

func (w *Wind) advance(o *Obstacle, _ int, rng *rand.Rand) {
	if len(w.Particles) < w.limit {
		w.Particles = append(w.Particles, Particle{
			X:     o.X + rng.Float64()*o.W,
			Y:     o.Y + rng.Float64()*o.H,
			Speed: w.Force * 2,
			Life:  1.0,
		})
	}

	alive := w.Particles[:0]
	for _, p := range w.Particles {
		p.X -= 2
		p.Y += p.Speed
		p.Life -= 0.02
		if p.Life > 0 && p.X >= 0 {
			alive = append(alive, p)
		}
	}
	w.Particles = alive
}

// Obstacle is a hazard drifting toward the sleigh.
// X is the drift position; behaviors may offset the drawn bounds.
type Obstacle struct {
	ID       int
	Type     ObstacleType
	X, Y     float64
	W, H     float64
	Scale    float64
	Behavior Behavior // nil for static obstacles

	consumed bool
}

// Bounds returns the collision box, including any slide offset.
func (o *Obstacle) Bounds() core.Box {
	x := o.X
	if s, ok := o.Behavior.(*Slide); ok {
		x += s.Offset
	}
	return core.NewBox(x, o.Y, o.W, o.H)
}

// Wind returns the wind behavior of a gust.
func (o *Obstacle) Wind() (*Wind, bool) {
	w, ok := o.Behavior.(*Wind)
	return w, ok
}

// Solid reports whether touching the obstacle is a collision.
func (o *Obstacle) Solid() bool {
	return o.Type != ObstacleWindGust
}

// Collectible is a pickup drifting toward the sleigh.
type Collectible struct {
	ID    int
	Type  CollectibleType
	X, Y  float64
	W, H  float64
	Scale float64
	Phase float64 // Float animation offset
	Gold  bool

	consumed bool
}

// Bounds returns the pickup box.
func (c *Collectible) Bounds() core.Box {
	return core.NewBox(c.X, c.Y, c.W, c.H)
}
