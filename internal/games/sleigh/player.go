package sleigh

import (
	"github.com/vovakirdan/sleigh-run/internal/config"
	"github.com/vovakirdan/sleigh-run/internal/core"
)

// Player is the steered sleigh. It implements Controlled.
type Player struct {
	cfg     config.PlayerConfig
	minY    float64
	maxY    float64
	X, Y    float64
	VY      float64
	steer   int // -1 up, +1 down, 0 coasting
	latched int // Frames the current steer direction stays held
}

// NewPlayer places a player at its configured start inside canvas.
func NewPlayer(cfg config.PlayerConfig, canvas config.CanvasConfig) *Player {
	p := &Player{cfg: cfg, minY: 0, maxY: canvas.Height - cfg.Height}
	p.Reset()
	return p
}

// Reset moves the player back to the start position at rest.
func (p *Player) Reset() {
	p.X = p.cfg.X
	p.Y = p.cfg.Y
	p.VY = 0
	p.steer = 0
	p.latched = 0
}

// Steer holds a vertical direction for the configured latch period.
// Terminals deliver key repeats rather than key-up events, so a press
// keeps steering until it lapses.
func (p *Player) Steer(dir int) {
	p.steer = dir
	p.latched = max(p.cfg.SteerLatch, 1)
}

// Move applies one frame of steering, wind and clamping.
func (p *Player) Move(mods Modifiers, wind float64) {
	boost := mods.Ambient * mods.Dash
	target := p.cfg.Speed * boost
	accel := p.cfg.Acceleration * boost

	if wind != 0 {
		p.VY += wind * p.cfg.WindInfluence
	}

	switch {
	case p.steer < 0:
		p.VY = max(p.VY-accel*2, -target)
	case p.steer > 0:
		p.VY = min(p.VY+accel*2, target)
	case p.VY > 0:
		p.VY = max(0, p.VY-accel)
	case p.VY < 0:
		p.VY = min(0, p.VY+accel)
	}

	if p.latched > 0 {
		p.latched--
		if p.latched == 0 {
			p.steer = 0
		}
	}

	p.Y += p.VY
	if p.Y < p.minY {
		p.Y = p.minY
		p.VY = 0
	}
	if p.Y > p.maxY {
		p.Y = p.maxY
		p.VY = 0
	}
}

// Bounds returns the collision box.
func (p *Player) Bounds() core.Box {
	return core.NewBox(p.X, p.Y, p.cfg.Width, p.cfg.Height)
}
