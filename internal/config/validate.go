package config

import (
	"errors"
	"fmt"
)

// Validate reports every problem in the config at once.
func (c RunnerConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	positiveInt := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}
	ordered := func(name string, lo, hi float64) {
		if lo > hi {
			errs = append(errs, fmt.Errorf("%s range is inverted: %v > %v", name, lo, hi))
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	positive("canvas.width", c.Canvas.Width)
	positive("canvas.height", c.Canvas.Height)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("player.speed", c.Player.Speed)

	nonNegative("obstacles.spawn_rate", c.Obstacles.SpawnRate)
	positiveInt("obstacles.min_interval", c.Obstacles.MinInterval)
	positive("obstacles.base_speed", c.Obstacles.BaseSpeed)
	positive("obstacles.size_min", c.Obstacles.SizeMin)
	ordered("obstacles.size", c.Obstacles.SizeMin, c.Obstacles.SizeMax)
	nonNegative("obstacles.ground_variation", c.Obstacles.GroundVariation)
	kinds := []struct {
		name string
		kind ObstacleKind
	}{
		{"chimney", c.Obstacles.Chimney},
		{"snowman", c.Obstacles.Snowman},
		{"tree", c.Obstacles.Tree},
		{"cloud", c.Obstacles.Cloud},
		{"wind_gust", c.Obstacles.WindGust},
	}
	var obstacleWeight float64
	for _, k := range kinds {
		positive("obstacles."+k.name+".width", k.kind.Width)
		positive("obstacles."+k.name+".height", k.kind.Height)
		nonNegative("obstacles."+k.name+".weight", k.kind.Weight)
		obstacleWeight += max(k.kind.Weight, 0)
	}
	if obstacleWeight <= 0 {
		errs = append(errs, errors.New("obstacles: weight table is empty"))
	}

	nonNegative("collectibles.spawn_rate", c.Collectibles.SpawnRate)
	positiveInt("collectibles.min_interval", c.Collectibles.MinInterval)
	positive("collectibles.speed", c.Collectibles.Speed)
	positive("collectibles.width", c.Collectibles.Width)
	positive("collectibles.height", c.Collectibles.Height)
	positive("collectibles.size_min", c.Collectibles.SizeMin)
	ordered("collectibles.size", c.Collectibles.SizeMin, c.Collectibles.SizeMax)
	probability("collectibles.gold_chance", c.Collectibles.GoldChance)
	w := c.Collectibles.Weights
	nonNegative("collectibles.weights.gift", w.Gift)
	nonNegative("collectibles.weights.slow_motion", w.SlowMotion)
	nonNegative("collectibles.weights.shield", w.Shield)
	nonNegative("collectibles.weights.double_score", w.DoubleScore)
	if max(w.Gift, 0)+max(w.SlowMotion, 0)+max(w.Shield, 0)+max(w.DoubleScore, 0) <= 0 {
		errs = append(errs, errors.New("collectibles: weight table is empty"))
	}

	if c.Difficulty.MaxMultiplier < 1 {
		errs = append(errs, fmt.Errorf("difficulty.max_multiplier must be at least 1, got %v", c.Difficulty.MaxMultiplier))
	}
	nonNegative("difficulty.increase_rate", c.Difficulty.IncreaseRate)

	positiveInt("power_ups.slow_motion", c.PowerUps.SlowMotion)
	positiveInt("power_ups.shield", c.PowerUps.Shield)
	positiveInt("power_ups.double_score", c.PowerUps.DoubleScore)
	positive("power_ups.slow_factor", c.PowerUps.SlowFactor)

	positiveInt("route.decision_interval", c.Route.DecisionInterval)
	positiveInt("route.decision_window", c.Route.DecisionWindow)
	positiveInt("route.duration", c.Route.Duration)

	positiveInt("ability.cooldown", c.Ability.Cooldown)
	positiveInt("ability.dash_duration", c.Ability.DashDuration)
	positiveInt("ability.shield_duration", c.Ability.ShieldDuration)
	positiveInt("ability.slow_time_duration", c.Ability.SlowTimeDuration)
	positive("ability.slow_time_factor", c.Ability.SlowTimeFactor)

	positiveInt("moments.interval_min", c.Moments.IntervalMin)
	ordered("moments.interval", float64(c.Moments.IntervalMin), float64(c.Moments.IntervalMax))
	if c.Moments.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("moments.cooldown must not be negative, got %d", c.Moments.Cooldown))
	}
	positiveInt("moments.snowstorm.duration", c.Moments.Snowstorm.Duration)
	positiveInt("moments.speed_burst.duration", c.Moments.SpeedBurst.Duration)
	positiveInt("moments.gift_rush.duration", c.Moments.GiftRush.Duration)

	return errors.Join(errs...)
}
