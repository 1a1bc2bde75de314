package config

import (
	"math"
	"testing"
)

func TestDifficultyMultiplier(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:       true,
		IncreaseRate:  0.0001,
		MaxMultiplier: 2.5,
	})

	tests := []struct {
		frame int
		want  float64
	}{
		{0, 1.0},
		{1000, 1.1},
		{10000, 2.0},
		{15000, 2.5},
		{1_000_000, 2.5},
	}
	for _, tt := range tests {
		if got := d.Multiplier(tt.frame); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Multiplier(%d) = %v, expected %v", tt.frame, got, tt.want)
		}
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: true, IncreaseRate: 0.0001, MaxMultiplier: 3})
	d.SetInitialLevel(0.5)

	if got := d.Multiplier(0); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("Multiplier(0) at level 0.5 = %v, expected 2.0", got)
	}
	if got := d.Level(0); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level(0) = %v, expected 0.5", got)
	}

	d.SetInitialLevel(7)
	if got := d.Multiplier(0); got != 3 {
		t.Errorf("initial level should clamp to 1, Multiplier(0) = %v", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: false, IncreaseRate: 0.0001, MaxMultiplier: 2.5})
	if d.IsEnabled() {
		t.Error("manager should report disabled")
	}
	for _, frame := range []int{0, 5000, 50000} {
		if got := d.Multiplier(frame); got != 1.0 {
			t.Errorf("disabled Multiplier(%d) = %v, expected 1.0", frame, got)
		}
	}
}
