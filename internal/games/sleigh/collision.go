package sleigh

import (
	"math"

	"github.com/vovakirdan/sleigh-run/internal/core"
)

// resolve tests the sleigh box against every entity. A fatal hit ends the
// run and stops further testing for the step; pickups are then skipped.
func (s *Simulation) resolve(b core.Box, mods Modifiers) {
	for _, o := range s.obstacles.Obstacles() {
		if !o.Solid() || !b.Overlaps(o.Bounds()) {
			continue
		}
		if src := s.consumeShield(); src != ShieldNone {
			o.consumed = true
			s.emit(ObstacleCollisionEvent{Obstacle: o.Type, Source: src})
			continue
		}
		s.over = true
		s.emit(ObstacleCollisionEvent{Obstacle: o.Type, Fatal: true})
		break
	}
	s.obstacles.sweep()
	if s.over {
		return
	}

	for _, c := range s.collectibles.Collectibles() {
		if !b.Overlaps(c.Bounds()) {
			continue
		}
		c.consumed = true
		s.emit(CollectibleCollectedEvent{Type: c.Type, Points: s.reward(c, mods), Gold: c.Gold})
	}
	s.collectibles.sweep()
}

// consumeShield spends one shield, ability first.
func (s *Simulation) consumeShield() ShieldSource {
	if s.ability.ConsumeShield() {
		return ShieldAbility
	}
	if s.powerUps.ConsumeShield() {
		return ShieldPowerUp
	}
	return ShieldNone
}

// reward applies a pickup and returns the points it is worth.
func (s *Simulation) reward(c *Collectible, mods Modifiers) int {
	scoring := s.cfg.Scoring
	if kind, ok := c.Type.PowerUp(); ok {
		s.powerUps.Activate(kind)
		return int(math.Round(scoring.PerPowerUp * s.powerUps.ScoreFactor()))
	}
	return int(math.Round(scoring.PerGift * mods.GiftValue * s.powerUps.ScoreFactor()))
}
