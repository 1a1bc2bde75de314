package sleigh

import "github.com/vovakirdan/sleigh-run/internal/core"

// Autopilot produces input for unattended runs: it steers away from the
// nearest solid obstacle ahead, answers forks and fires the ability.
type Autopilot struct {
	Route      Route   // Branch to take at forks; RouteNeutral lets them auto-resolve
	UseAbility bool    // Fire the ability whenever it is ready
	Lookahead  float64 // Horizontal scan distance; 0 means 220
}

// Input returns the actions for the next step of g.
func (a Autopilot) Input(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	sim := g.Simulation()
	if sim == nil || sim.Over() {
		return in
	}

	if a.Route != RouteNeutral && sim.Route().Deciding() {
		if a.Route == RouteLeft {
			in.Set(core.ActionLeft)
		} else {
			in.Set(core.ActionRight)
		}
	}
	if a.UseAbility && sim.Ability().Ready() {
		in.Set(core.ActionAbility)
	}

	if dir := a.steer(g); dir < 0 {
		in.Set(core.ActionUp)
	} else if dir > 0 {
		in.Set(core.ActionDown)
	}
	return in
}

// steer returns -1 to climb, +1 to dive, 0 to hold.
func (a Autopilot) steer(g *Game) int {
	look := a.Lookahead
	if look <= 0 {
		look = 220
	}
	p := g.Player().Bounds()
	lane := core.NewBox(p.X, p.Y-20, p.W+look, p.H+40)

	var threat *Obstacle
	for _, o := range g.Simulation().Obstacles().Obstacles() {
		if !o.Solid() || !o.Bounds().Overlaps(lane) || o.Bounds().Right() < p.X {
			continue
		}
		if threat == nil || o.X < threat.X {
			threat = o
		}
	}
	if threat == nil {
		return 0
	}

	b := threat.Bounds()
	canvas := g.Simulation().Config().Canvas
	roomAbove := b.Y - p.H
	roomBelow := canvas.Height - b.Bottom() - p.H
	if roomAbove >= roomBelow {
		return -1
	}
	return 1
}
