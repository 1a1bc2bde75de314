package sleigh

// Event is something that happened during a simulation step.
// Listeners switch on the concrete type.
type Event interface {
	sleighEvent()
}

// ShieldSource identifies which shield absorbed a collision.
type ShieldSource int

const (
	ShieldNone    ShieldSource = iota // No shield, the hit was fatal
	ShieldAbility                     // The session ability shield
	ShieldPowerUp                     // A picked-up shield power-up
)

func (s ShieldSource) String() string {
	switch s {
	case ShieldAbility:
		return "ability"
	case ShieldPowerUp:
		return "power-up"
	default:
		return "none"
	}
}

// ObstacleCollisionEvent is emitted when the sleigh touches a solid obstacle.
type ObstacleCollisionEvent struct {
	Obstacle ObstacleType
	Fatal    bool
	Source   ShieldSource
}

func (ObstacleCollisionEvent) sleighEvent() {}

// CollectibleCollectedEvent is emitted for every pickup.
type CollectibleCollectedEvent struct {
	Type   CollectibleType
	Points int
	Gold   bool
}

func (CollectibleCollectedEvent) sleighEvent() {}

// MomentStartedEvent is emitted when a pacing moment begins.
type MomentStartedEvent struct {
	Moment   Moment
	Duration int
}

func (MomentStartedEvent) sleighEvent() {}

// MomentEndedEvent is emitted when a pacing moment runs out.
type MomentEndedEvent struct {
	Moment Moment
}

func (MomentEndedEvent) sleighEvent() {}

// SnowstormSurvivedEvent follows the end of a snowstorm the sleigh lived through.
type SnowstormSurvivedEvent struct{}

func (SnowstormSurvivedEvent) sleighEvent() {}

// AbilityActivatedEvent is emitted when the ability fires.
type AbilityActivatedEvent struct {
	Ability AbilityKind
	Uses    int // Activations so far this run
}

func (AbilityActivatedEvent) sleighEvent() {}

// RouteDecisionEvent is emitted when a fork opens.
type RouteDecisionEvent struct {
	Window int // Frames left to choose
}

func (RouteDecisionEvent) sleighEvent() {}

// RouteSelectedEvent is emitted when a route is taken, by choice or by timeout.
type RouteSelectedEvent struct {
	Route Route
	Auto  bool
}

func (RouteSelectedEvent) sleighEvent() {}

// PowerUpExpiredEvent is emitted when a power-up timer runs out.
type PowerUpExpiredEvent struct {
	PowerUp PowerUpKind
}

func (PowerUpExpiredEvent) sleighEvent() {}

// RunEndedEvent is emitted once per run with the final score.
type RunEndedEvent struct {
	Score  int
	Frames int
}

func (RunEndedEvent) sleighEvent() {}
