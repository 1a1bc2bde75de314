package sleigh

import "github.com/vovakirdan/sleigh-run/internal/config"

// Route is the branch of the lane the sleigh is on.
type Route int

const (
	RouteNeutral Route = iota
	RouteLeft
	RouteRight
)

func (r Route) String() string {
	switch r {
	case RouteLeft:
		return "left"
	case RouteRight:
		return "right"
	default:
		return "neutral"
	}
}

// RouteManager opens a fork every DecisionInterval frames while neutral.
// An unanswered fork resolves to the right-hand route.
type RouteManager struct {
	cfg       config.RouteConfig
	route     Route
	remaining int // Frames left on the chosen route
	deciding  bool
	window    int // Frames left to choose
}

// NewRouteManager creates a route manager in the neutral state.
func NewRouteManager(cfg config.RouteConfig) *RouteManager {
	return &RouteManager{cfg: cfg}
}

// Reset returns to neutral with no fork open.
func (m *RouteManager) Reset() {
	m.route = RouteNeutral
	m.remaining = 0
	m.deciding = false
	m.window = 0
}

// Update advances the route by one frame.
func (m *RouteManager) Update(frame int, emit func(Event)) {
	switch {
	case m.deciding:
		m.window--
		if m.window <= 0 {
			m.take(RouteRight)
			emit(RouteSelectedEvent{Route: RouteRight, Auto: true})
		}
	case m.route != RouteNeutral:
		m.remaining--
		if m.remaining <= 0 {
			m.route = RouteNeutral
			m.remaining = 0
		}
	case frame > 0 && frame%m.cfg.DecisionInterval == 0:
		m.deciding = true
		m.window = m.cfg.DecisionWindow
		emit(RouteDecisionEvent{Window: m.window})
	}
}

// Select takes a branch while a fork is open. It reports whether the
// choice was accepted.
func (m *RouteManager) Select(r Route) bool {
	if !m.deciding || (r != RouteLeft && r != RouteRight) {
		return false
	}
	m.take(r)
	return true
}

func (m *RouteManager) take(r Route) {
	m.route = r
	m.remaining = m.cfg.Duration
	m.deciding = false
	m.window = 0
}

// Route returns the current branch.
func (m *RouteManager) Route() Route { return m.route }

// Remaining returns frames left on the current branch.
func (m *RouteManager) Remaining() int { return m.remaining }

// Deciding reports whether a fork is open.
func (m *RouteManager) Deciding() bool { return m.deciding }

// WindowRemaining returns frames left to choose, 0 when no fork is open.
func (m *RouteManager) WindowRemaining() int { return m.window }

// WindowProgress returns how much of the decision window has elapsed, in [0, 1].
func (m *RouteManager) WindowProgress() float64 {
	if !m.deciding || m.cfg.DecisionWindow <= 0 {
		return 0
	}
	return 1 - float64(m.window)/float64(m.cfg.DecisionWindow)
}

// Effects returns the multipliers of the current branch.
func (m *RouteManager) Effects() RouteEffects {
	switch m.route {
	case RouteLeft:
		return routeEffects(m.cfg.Left)
	case RouteRight:
		return routeEffects(m.cfg.Right)
	default:
		return neutralRoute
	}
}

func routeEffects(c config.RouteEffects) RouteEffects {
	return RouteEffects{Spawn: c.Spawn, Speed: c.Speed, GiftValue: c.GiftValue, Score: c.Score}
}
