package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Canvas: CanvasConfig{
			Width:        800,
			Height:       600,
			GroundOffset: 20,
		},
		Player: PlayerConfig{
			X:             100,
			Y:             300,
			Width:         60,
			Height:        40,
			Speed:         4,
			Acceleration:  0.15,
			WindInfluence: 0.3,
			SteerLatch:    8,
		},
		Obstacles: ObstacleConfig{
			SpawnRate:       0.04,
			MinInterval:     30,
			BaseSpeed:       3,
			SizeMin:         0.7,
			SizeMax:         1.4,
			GroundVariation: 100,
			Chimney:         ObstacleKind{Width: 50, Height: 80, Weight: 1},
			Snowman:         ObstacleKind{Width: 60, Height: 70, Weight: 1},
			Tree:            ObstacleKind{Width: 50, Height: 100, Weight: 1},
			Cloud:           ObstacleKind{Width: 80, Height: 50, Weight: 1, Floating: true, BandTop: 50, BandBottom: 100},
			WindGust:        ObstacleKind{Width: 100, Height: 150, Weight: 1, Floating: true, BandTop: 100, BandBottom: 50},
			Behavior: BehaviorConfig{
				BobAmplitude:   15,
				BobRate:        0.05,
				BobPhaseScale:  0.01,
				SlideAmplitude: 100,
				SlideRate:      0.08,
				WindForce:      2,
				WindParticles:  20,
			},
		},
		Collectibles: CollectibleConfig{
			SpawnRate:   0.01,
			MinInterval: 120,
			Speed:       2.5,
			Width:       30,
			Height:      30,
			SizeMin:     1.0,
			SizeMax:     1.0,
			BandTop:     50,
			BandBottom:  50,
			GoldChance:  0.1,
			FloatRate:   0.1,
			FloatAmount: 0.5,
			Weights: Weights{
				Gift:        60,
				SlowMotion:  15,
				Shield:      15,
				DoubleScore: 10,
			},
		},
		Scoring: ScoringConfig{
			PerSecond:  10,
			PerGift:    50,
			PerPowerUp: 100,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			InitialLevel:  0.0,
			IncreaseRate:  0.0001,
			MaxMultiplier: 2.5,
		},
		PowerUps: PowerUpConfig{
			SlowMotion:  300,
			Shield:      600,
			DoubleScore: 900,
			SlowFactor:  0.5,
		},
		Route: RouteConfig{
			DecisionInterval: 600,
			DecisionWindow:   180,
			Duration:         480,
			Left:             RouteEffects{Spawn: 1.5, Speed: 1.3, GiftValue: 2.0, Score: 1.5},
			Right:            RouteEffects{Spawn: 0.7, Speed: 0.8, GiftValue: 1.0, Score: 1.0},
		},
		Ability: AbilityConfig{
			Cooldown:         600,
			DashDuration:     30,
			DashSpeed:        2.0,
			ShieldDuration:   180,
			SlowTimeDuration: 300,
			SlowTimeFactor:   0.4,
		},
		Moments: MomentConfig{
			IntervalMin: 900,
			IntervalMax: 1800,
			Cooldown:    300,
			Snowstorm:   MomentEffect{Duration: 300, Visibility: 0.5, Shake: 1.0, ObstacleSpawn: 0.7, GiftSpawn: 0.5, Speed: 1.0, Score: 1.2},
			SpeedBurst:  MomentEffect{Duration: 360, Visibility: 1.0, Shake: 0.5, ObstacleSpawn: 1.0, GiftSpawn: 1.0, Speed: 1.5, Score: 1.5},
			GiftRush:    MomentEffect{Duration: 420, Visibility: 1.0, Shake: 0.0, ObstacleSpawn: 0.5, GiftSpawn: 3.0, Speed: 1.0, Score: 1.0},
		},
		Effects: EffectsConfig{
			ShakeScale:       3,
			ShakeDecay:       0.9,
			NearMissShake:    2,
			NearMissMin:      20,
			NearMissMax:      50,
			NearMissCooldown: 60,
		},
	}
}

// DefaultYAML returns the embedded default runner YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
