package sleigh

import "math"

// Snapshot is a flat copy of the simulation state for determinism checks
// and debugging output.
type Snapshot struct {
	Frame           int
	Over            bool
	Route           Route
	RouteRemaining  int
	DecisionWindow  int
	Moment          Moment
	MomentRemaining int
	NextMoment      int
	AbilityActive   int
	AbilityCooldown int
	PowerUps        [powerUpCount]int

	// Each obstacle is 5 values: Type, X, Y, W, H
	ObstacleData []float64
	// Each collectible is 6 values: Type, X, Y, W, H, Gold
	CollectibleData []float64
}

// Snapshot returns the current simulation state.
func (s *Simulation) Snapshot() Snapshot {
	obstacles := s.obstacles.Obstacles()
	obstacleData := make([]float64, 0, len(obstacles)*5)
	for _, o := range obstacles {
		b := o.Bounds()
		obstacleData = append(obstacleData, float64(o.Type), o.X, b.X, b.Y, b.W, b.H)
	}

	items := s.collectibles.Collectibles()
	collectibleData := make([]float64, 0, len(items)*6)
	for _, c := range items {
		gold := 0.0
		if c.Gold {
			gold = 1
		}
		collectibleData = append(collectibleData, float64(c.Type), c.X, c.Y, c.W, c.H, gold)
	}

	return Snapshot{
		Frame:           s.frame,
		Over:            s.over,
		Route:           s.route.Route(),
		RouteRemaining:  s.route.Remaining(),
		DecisionWindow:  s.route.WindowRemaining(),
		Moment:          s.moments.Active(),
		MomentRemaining: s.moments.Remaining(),
		NextMoment:      s.moments.Next(),
		AbilityActive:   s.ability.ActiveRemaining(),
		AbilityCooldown: s.ability.CooldownRemaining(),
		PowerUps:        s.powerUps.remaining,
		ObstacleData:    obstacleData,
		CollectibleData: collectibleData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Frame) //#nosec G115 -- hash computation
	if snap.Over {
		h = h*31 + 1
	}
	for _, v := range []int{
		int(snap.Route), snap.RouteRemaining, snap.DecisionWindow,
		int(snap.Moment), snap.MomentRemaining, snap.NextMoment,
		snap.AbilityActive, snap.AbilityCooldown,
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.PowerUps {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.ObstacleData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.CollectibleData {
		h = h*31 + math.Float64bits(v)
	}
	return h
}
