package sleigh

import (
	"fmt"

	"github.com/vovakirdan/sleigh-run/internal/config"
)

// AbilityKind is the per-session ability chosen before a run.
type AbilityKind int

const (
	AbilityDash AbilityKind = iota
	AbilityShield
	AbilitySlowTime
)

// AbilityKinds lists every ability in display order.
var AbilityKinds = []AbilityKind{AbilityDash, AbilityShield, AbilitySlowTime}

func (k AbilityKind) String() string {
	switch k {
	case AbilityDash:
		return "dash"
	case AbilityShield:
		return "shield"
	case AbilitySlowTime:
		return "slowtime"
	default:
		return "unknown"
	}
}

// ParseAbility maps a name such as "dash" to its kind.
func ParseAbility(s string) (AbilityKind, error) {
	for _, k := range AbilityKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("sleigh: unknown ability %q", s)
}

// AbilityManager tracks the ready/active/cooling cycle of one ability.
// The active and cooldown timers are never both non-zero.
type AbilityManager struct {
	cfg      config.AbilityConfig
	kind     AbilityKind
	active   int
	cooldown int
	uses     int
}

// NewAbilityManager creates a ready ability of the given kind.
func NewAbilityManager(kind AbilityKind, cfg config.AbilityConfig) *AbilityManager {
	return &AbilityManager{cfg: cfg, kind: kind}
}

// Reset makes the ability ready and clears the use counter.
func (m *AbilityManager) Reset() {
	m.active = 0
	m.cooldown = 0
	m.uses = 0
}

// Kind returns the ability kind.
func (m *AbilityManager) Kind() AbilityKind { return m.kind }

// Activate fires the ability if it is ready and reports whether it did.
func (m *AbilityManager) Activate() bool {
	if !m.Ready() {
		return false
	}
	m.active = m.duration()
	m.uses++
	return true
}

// Update advances the active or cooldown timer by one frame.
func (m *AbilityManager) Update() {
	if m.active > 0 {
		m.active--
		if m.active == 0 {
			m.cooldown = m.cfg.Cooldown
		}
		return
	}
	if m.cooldown > 0 {
		m.cooldown--
	}
}

// ConsumeShield spends an active shield ability, starting the cooldown.
func (m *AbilityManager) ConsumeShield() bool {
	if m.kind != AbilityShield || m.active == 0 {
		return false
	}
	m.active = 0
	m.cooldown = m.cfg.Cooldown
	return true
}

// Ready reports whether Activate would succeed.
func (m *AbilityManager) Ready() bool {
	return m.active == 0 && m.cooldown == 0
}

// Active reports whether the effect is live.
func (m *AbilityManager) Active() bool { return m.active > 0 }

// ActiveRemaining returns frames left on the live effect.
func (m *AbilityManager) ActiveRemaining() int { return m.active }

// CooldownRemaining returns frames until the ability is ready.
func (m *AbilityManager) CooldownRemaining() int { return m.cooldown }

// Uses returns successful activations since the last reset.
func (m *AbilityManager) Uses() int { return m.uses }

// Charge returns cooldown progress in [0, 1]; 1 means ready.
func (m *AbilityManager) Charge() float64 {
	if m.active > 0 {
		return 0
	}
	if m.cooldown == 0 || m.cfg.Cooldown <= 0 {
		return 1
	}
	return 1 - float64(m.cooldown)/float64(m.cfg.Cooldown)
}

func (m *AbilityManager) duration() int {
	switch m.kind {
	case AbilityDash:
		return m.cfg.DashDuration
	case AbilityShield:
		return m.cfg.ShieldDuration
	default:
		return m.cfg.SlowTimeDuration
	}
}

// Effects returns the live effect bundle, neutral while not active.
func (m *AbilityManager) Effects() AbilityEffects {
	if m.active == 0 {
		return neutralAbility
	}
	e := neutralAbility
	switch m.kind {
	case AbilityDash:
		e.Speed = m.cfg.DashSpeed
	case AbilityShield:
		e.Shield = true
	case AbilitySlowTime:
		e.TimeSlow = m.cfg.SlowTimeFactor
	}
	return e
}
