package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := ParseRunner(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	// Decode into a zero value too so keys missing from the file are caught.
	var bare RunnerConfig
	if err := yaml.Unmarshal(DefaultYAML(), &bare); err != nil {
		t.Fatalf("embedded YAML strict decode: %v", err)
	}

	want := DefaultRunnerConfig()
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded defaults differ from DefaultRunnerConfig:\n got %+v\nwant %+v", cfg, want)
	}
	if !reflect.DeepEqual(bare, want) {
		t.Errorf("embedded YAML omits keys present in DefaultRunnerConfig:\n got %+v\nwant %+v", bare, want)
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
		want   string
	}{
		{"zero power-up duration", func(c *RunnerConfig) { c.PowerUps.Shield = 0 }, "power_ups.shield"},
		{"inverted moment interval", func(c *RunnerConfig) { c.Moments.IntervalMax = c.Moments.IntervalMin - 1 }, "moments.interval"},
		{"inverted size range", func(c *RunnerConfig) { c.Obstacles.SizeMax = 0.1 }, "obstacles.size"},
		{"empty collectible weights", func(c *RunnerConfig) { c.Collectibles.Weights = Weights{} }, "collectibles: weight table is empty"},
		{"empty obstacle weights", func(c *RunnerConfig) {
			for _, k := range []*ObstacleKind{&c.Obstacles.Chimney, &c.Obstacles.Snowman, &c.Obstacles.Tree, &c.Obstacles.Cloud, &c.Obstacles.WindGust} {
				k.Weight = 0
			}
		}, "obstacles: weight table is empty"},
		{"gold chance above one", func(c *RunnerConfig) { c.Collectibles.GoldChance = 1.5 }, "gold_chance"},
		{"max multiplier below one", func(c *RunnerConfig) { c.Difficulty.MaxMultiplier = 0.5 }, "max_multiplier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateJoinsAllProblems(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Route.Duration = 0
	cfg.Ability.Cooldown = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"route.duration", "ability.cooldown"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestLoadRunnerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runner.yaml")
	data := "route:\n  duration: 240\nability:\n  cooldown: 120\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner: %v", err)
	}
	if cfg.Route.Duration != 240 {
		t.Errorf("route.duration = %d, expected 240", cfg.Route.Duration)
	}
	if cfg.Ability.Cooldown != 120 {
		t.Errorf("ability.cooldown = %d, expected 120", cfg.Ability.Cooldown)
	}
	// Untouched keys keep their defaults.
	if cfg.Route.DecisionWindow != 180 {
		t.Errorf("route.decision_window = %d, expected default 180", cfg.Route.DecisionWindow)
	}
}

func TestLoadRunnerErrors(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should be an error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("power_ups:\n  shield: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(path); err == nil || !strings.Contains(err.Error(), "power_ups.shield") {
		t.Errorf("invalid config should fail validation, got %v", err)
	}
}

func TestApplyRunnerPreset(t *testing.T) {
	base := DefaultRunnerConfig()

	fixed := base
	ApplyRunnerPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	easy := base
	ApplyRunnerPreset(&easy, DifficultyEasy)
	if easy.Difficulty.IncreaseRate >= base.Difficulty.IncreaseRate {
		t.Error("easy preset should slow the ramp")
	}

	hard := base
	ApplyRunnerPreset(&hard, DifficultyHard)
	if hard.Difficulty.InitialLevel <= 0 {
		t.Error("hard preset should start above the floor")
	}
	if hard.Obstacles.MinInterval >= base.Obstacles.MinInterval {
		t.Error("hard preset should shorten the obstacle interval")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		ok   bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{"fixed", DifficultyFixed, true},
		{"nightmare", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePreset(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePreset(%q) = %q, %v; expected %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
