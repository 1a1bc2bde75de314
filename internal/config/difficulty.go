package config

import "math"

// DifficultyManager computes the global difficulty multiplier for a frame.
// The multiplier starts at 1 (raised by InitialLevel) and grows linearly
// per frame until it reaches MaxMultiplier.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.IncreaseRate > 0
}

// Max returns the multiplier ceiling.
func (d *DifficultyManager) Max() float64 {
	return math.Max(1.0, d.cfg.MaxMultiplier)
}

// Multiplier returns the difficulty multiplier at the given frame, in [1, Max].
func (d *DifficultyManager) Multiplier(frame int) float64 {
	hi := d.Max()
	base := 1.0 + d.initialLevel*(hi-1.0)
	if !d.IsEnabled() {
		return base
	}
	return clampF(base+float64(frame)*d.cfg.IncreaseRate, 1.0, hi)
}

// Level returns the normalized difficulty (0.0 to 1.0) at the given frame.
func (d *DifficultyManager) Level(frame int) float64 {
	hi := d.Max()
	if hi <= 1.0 {
		return 0
	}
	return (d.Multiplier(frame) - 1.0) / (hi - 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
