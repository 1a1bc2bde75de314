// Package config provides YAML-based runner configuration loading,
// validation and difficulty management.
package config

// RunnerConfig contains all tunables for a sleigh run.
// Units are canvas pixels and simulation frames.
type RunnerConfig struct {
	Canvas       CanvasConfig      `yaml:"canvas"`
	Player       PlayerConfig      `yaml:"player"`
	Obstacles    ObstacleConfig    `yaml:"obstacles"`
	Collectibles CollectibleConfig `yaml:"collectibles"`
	Scoring      ScoringConfig     `yaml:"scoring"`
	Difficulty   DifficultyConfig  `yaml:"difficulty"`
	PowerUps     PowerUpConfig     `yaml:"power_ups"`
	Route        RouteConfig       `yaml:"route"`
	Ability      AbilityConfig     `yaml:"ability"`
	Moments      MomentConfig      `yaml:"moments"`
	Effects      EffectsConfig     `yaml:"effects"`
}

// CanvasConfig defines the logical play field.
type CanvasConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Distance of the ground line from the bottom edge
}

// Ground returns the y coordinate of the ground line.
func (c CanvasConfig) Ground() float64 {
	return c.Height - c.GroundOffset
}

// PlayerConfig defines the controlled sleigh.
type PlayerConfig struct {
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	Acceleration  float64 `yaml:"acceleration"`
	WindInfluence float64 `yaml:"wind_influence"` // Fraction of wind force added to velocity each frame
	SteerLatch    int     `yaml:"steer_latch"`    // Frames a key press keeps steering
}

// ObstacleConfig defines obstacle spawning and per-type geometry.
type ObstacleConfig struct {
	SpawnRate       float64        `yaml:"spawn_rate"`
	MinInterval     int            `yaml:"min_interval"`
	BaseSpeed       float64        `yaml:"base_speed"`
	SizeMin         float64        `yaml:"size_min"`
	SizeMax         float64        `yaml:"size_max"`
	GroundVariation float64        `yaml:"ground_variation"`
	Chimney         ObstacleKind   `yaml:"chimney"`
	Snowman         ObstacleKind   `yaml:"snowman"`
	Tree            ObstacleKind   `yaml:"tree"`
	Cloud           ObstacleKind   `yaml:"cloud"`
	WindGust        ObstacleKind   `yaml:"wind_gust"`
	Behavior        BehaviorConfig `yaml:"behavior"`
}

// ObstacleKind describes one obstacle type. Floating kinds spawn in the band
// [BandTop, canvas height - height - BandBottom]; the others sit on the ground.
type ObstacleKind struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Weight     float64 `yaml:"weight"`
	Floating   bool    `yaml:"floating"`
	BandTop    float64 `yaml:"band_top"`
	BandBottom float64 `yaml:"band_bottom"`
}

// BehaviorConfig defines per-type movement patterns.
type BehaviorConfig struct {
	BobAmplitude   float64 `yaml:"bob_amplitude"`
	BobRate        float64 `yaml:"bob_rate"`
	BobPhaseScale  float64 `yaml:"bob_phase_scale"` // Phase contribution per pixel of x
	SlideAmplitude float64 `yaml:"slide_amplitude"`
	SlideRate      float64 `yaml:"slide_rate"`
	WindForce      float64 `yaml:"wind_force"`
	WindParticles  int     `yaml:"wind_particles"`
}

// CollectibleConfig defines collectible spawning.
type CollectibleConfig struct {
	SpawnRate   float64 `yaml:"spawn_rate"`
	MinInterval int     `yaml:"min_interval"`
	Speed       float64 `yaml:"speed"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SizeMin     float64 `yaml:"size_min"`
	SizeMax     float64 `yaml:"size_max"`
	BandTop     float64 `yaml:"band_top"`
	BandBottom  float64 `yaml:"band_bottom"`
	GoldChance  float64 `yaml:"gold_chance"`
	FloatRate   float64 `yaml:"float_rate"`
	FloatAmount float64 `yaml:"float_amount"`
	Weights     Weights `yaml:"weights"`
}

// Weights is the relative draw weight of each collectible type.
type Weights struct {
	Gift        float64 `yaml:"gift"`
	SlowMotion  float64 `yaml:"slow_motion"`
	Shield      float64 `yaml:"shield"`
	DoubleScore float64 `yaml:"double_score"`
}

// ScoringConfig defines point awards.
type ScoringConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	PerGift    float64 `yaml:"per_gift"`
	PerPowerUp float64 `yaml:"per_power_up"`
}

// DifficultyConfig defines the frame-based difficulty ramp.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled"`
	InitialLevel  float64 `yaml:"initial_level"` // 0.0 starts at 1x, 1.0 starts at max
	IncreaseRate  float64 `yaml:"increase_rate"` // Multiplier gained per frame
	MaxMultiplier float64 `yaml:"max_multiplier"`
}

// PowerUpConfig holds the duration of each pickup power-up in frames.
type PowerUpConfig struct {
	SlowMotion  int     `yaml:"slow_motion"`
	Shield      int     `yaml:"shield"`
	DoubleScore int     `yaml:"double_score"`
	SlowFactor  float64 `yaml:"slow_factor"` // World speed factor while slow motion is active
}

// RouteConfig defines the periodic fork in the lane.
type RouteConfig struct {
	DecisionInterval int          `yaml:"decision_interval"`
	DecisionWindow   int          `yaml:"decision_window"`
	Duration         int          `yaml:"duration"`
	Left             RouteEffects `yaml:"left"`
	Right            RouteEffects `yaml:"right"`
}

// RouteEffects are the multipliers a chosen route applies.
type RouteEffects struct {
	Spawn     float64 `yaml:"spawn"`
	Speed     float64 `yaml:"speed"`
	GiftValue float64 `yaml:"gift_value"`
	Score     float64 `yaml:"score"`
}

// AbilityConfig defines the per-session ability.
type AbilityConfig struct {
	Cooldown         int     `yaml:"cooldown"`
	DashDuration     int     `yaml:"dash_duration"`
	DashSpeed        float64 `yaml:"dash_speed"`
	ShieldDuration   int     `yaml:"shield_duration"`
	SlowTimeDuration int     `yaml:"slow_time_duration"`
	SlowTimeFactor   float64 `yaml:"slow_time_factor"`
}

// MomentConfig defines random pacing events.
type MomentConfig struct {
	IntervalMin int          `yaml:"interval_min"`
	IntervalMax int          `yaml:"interval_max"`
	Cooldown    int          `yaml:"cooldown"`
	Snowstorm   MomentEffect `yaml:"snowstorm"`
	SpeedBurst  MomentEffect `yaml:"speed_burst"`
	GiftRush    MomentEffect `yaml:"gift_rush"`
}

// MomentEffect is the duration and multiplier set of one moment kind.
type MomentEffect struct {
	Duration      int     `yaml:"duration"`
	Visibility    float64 `yaml:"visibility"`
	Shake         float64 `yaml:"shake"`
	ObstacleSpawn float64 `yaml:"obstacle_spawn"`
	GiftSpawn     float64 `yaml:"gift_spawn"`
	Speed         float64 `yaml:"speed"`
	Score         float64 `yaml:"score"`
}

// EffectsConfig defines camera feedback.
type EffectsConfig struct {
	ShakeScale       float64 `yaml:"shake_scale"` // Moment shake to camera intensity
	ShakeDecay       float64 `yaml:"shake_decay"`
	NearMissShake    float64 `yaml:"near_miss_shake"`
	NearMissMin      float64 `yaml:"near_miss_min"`
	NearMissMax      float64 `yaml:"near_miss_max"`
	NearMissCooldown int     `yaml:"near_miss_cooldown"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty input means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.3
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
