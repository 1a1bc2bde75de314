package sleigh

// RouteEffects are the multipliers contributed by the active route.
type RouteEffects struct {
	Spawn     float64
	Speed     float64
	GiftValue float64
	Score     float64
}

// MomentEffects are the multipliers contributed by the active moment.
type MomentEffects struct {
	Visibility    float64
	Shake         float64
	ObstacleSpawn float64
	GiftSpawn     float64
	Speed         float64
	Score         float64
}

// AbilityEffects are the multipliers contributed by the session ability.
type AbilityEffects struct {
	Speed    float64
	Shield   bool
	TimeSlow float64
}

var (
	neutralRoute   = RouteEffects{Spawn: 1, Speed: 1, GiftValue: 1, Score: 1}
	neutralMoment  = MomentEffects{Visibility: 1, Shake: 0, ObstacleSpawn: 1, GiftSpawn: 1, Speed: 1, Score: 1}
	neutralAbility = AbilityEffects{Speed: 1, TimeSlow: 1}
)

// Modifiers is the composed multiplier set for one step.
type Modifiers struct {
	Ambient          float64 // World speed: player motion, collectible drift
	ObstacleSpeed    float64
	ObstacleSpawn    float64
	CollectibleSpawn float64
	Score            float64
	GiftValue        float64
	Visibility       float64
	ScreenShake      float64
	Dash             float64 // Player steering boost
}

// Compose combines the three effect sources. It is pure and purely multiplicative.
func Compose(route RouteEffects, moment MomentEffects, ability AbilityEffects) Modifiers {
	return Modifiers{
		Ambient:          moment.Speed * ability.TimeSlow,
		ObstacleSpeed:    route.Speed * moment.Speed * ability.TimeSlow,
		ObstacleSpawn:    route.Spawn * moment.ObstacleSpawn,
		CollectibleSpawn: moment.GiftSpawn,
		Score:            route.Score * moment.Score,
		GiftValue:        route.GiftValue,
		Visibility:       moment.Visibility,
		ScreenShake:      moment.Shake,
		Dash:             ability.Speed,
	}
}

// Slowed returns m with world and obstacle speed scaled by factor.
func (m Modifiers) Slowed(factor float64) Modifiers {
	m.Ambient *= factor
	m.ObstacleSpeed *= factor
	return m
}
