package sleigh

import (
	"fmt"

	"github.com/vovakirdan/sleigh-run/internal/config"
)

// PowerUpKind is a timed effect granted by a collectible.
type PowerUpKind int

const (
	PowerUpSlowMotion PowerUpKind = iota
	PowerUpShield
	PowerUpDoubleScore
	powerUpCount // Sentinel for table sizing
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpSlowMotion:
		return "slow motion"
	case PowerUpShield:
		return "shield"
	case PowerUpDoubleScore:
		return "double score"
	default:
		return "?"
	}
}

// PowerUps holds one independent timer per power-up kind.
type PowerUps struct {
	durations [powerUpCount]int
	remaining [powerUpCount]int
}

// NewPowerUps builds the duration table from cfg. Every duration must be positive.
func NewPowerUps(cfg config.PowerUpConfig) (*PowerUps, error) {
	p := &PowerUps{}
	p.durations[PowerUpSlowMotion] = cfg.SlowMotion
	p.durations[PowerUpShield] = cfg.Shield
	p.durations[PowerUpDoubleScore] = cfg.DoubleScore
	for k, d := range p.durations {
		if d <= 0 {
			return nil, fmt.Errorf("sleigh: power-up %s duration must be positive, got %d", PowerUpKind(k), d)
		}
	}
	return p, nil
}

// Reset deactivates every power-up.
func (p *PowerUps) Reset() {
	p.remaining = [powerUpCount]int{}
}

// Activate starts or restarts kind with its full duration.
func (p *PowerUps) Activate(kind PowerUpKind) {
	p.remaining[kind] = p.durations[kind]
}

// Update counts every active timer down by one frame.
func (p *PowerUps) Update(emit func(Event)) {
	for k := range p.remaining {
		if p.remaining[k] <= 0 {
			continue
		}
		p.remaining[k]--
		if p.remaining[k] <= 0 {
			p.remaining[k] = 0
			emit(PowerUpExpiredEvent{PowerUp: PowerUpKind(k)})
		}
	}
}

// Active reports whether kind is running.
func (p *PowerUps) Active(kind PowerUpKind) bool {
	return p.remaining[kind] > 0
}

// Remaining returns frames left on kind.
func (p *PowerUps) Remaining(kind PowerUpKind) int {
	return p.remaining[kind]
}

// Duration returns the configured length of kind.
func (p *PowerUps) Duration(kind PowerUpKind) int {
	return p.durations[kind]
}

// ConsumeShield spends an active shield power-up.
func (p *PowerUps) ConsumeShield() bool {
	if p.remaining[PowerUpShield] <= 0 {
		return false
	}
	p.remaining[PowerUpShield] = 0
	return true
}

// ScoreFactor returns 2 while double score is running, otherwise 1.
func (p *PowerUps) ScoreFactor() float64 {
	if p.Active(PowerUpDoubleScore) {
		return 2
	}
	return 1
}
