package core

import "time"

// DefaultTickRate is the simulation rate when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what the platform hands a game on Reset: the terminal
// size the game renders into, the tick rate and the run seed.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int
	Seed     int64 // 0 lets the platform pick one from the clock
}

// WithDefaults fills zero fields with an 80x24 screen at DefaultTickRate.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.ScreenW <= 0 {
		c.ScreenW = 80
	}
	if c.ScreenH <= 0 {
		c.ScreenH = 24
	}
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	return c
}

// TickInterval is the wall-clock time of one tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.WithDefaults().TickRate)
}

// Frames converts a wall-clock duration to a tick count, at least one.
func (c RuntimeConfig) Frames(d time.Duration) int {
	return max(1, int(d/c.TickInterval()))
}

// GameState is the status the platform reads after every tick.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
