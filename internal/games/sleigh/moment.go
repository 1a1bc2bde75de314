package sleigh

import (
	"math/rand"

	"github.com/vovakirdan/sleigh-run/internal/config"
)

// Moment is a timed pacing event.
type Moment int

const (
	MomentNone Moment = iota
	MomentSnowstorm
	MomentSpeedBurst
	MomentGiftRush
)

var momentKinds = [...]Moment{MomentSnowstorm, MomentSpeedBurst, MomentGiftRush}

func (m Moment) String() string {
	switch m {
	case MomentSnowstorm:
		return "snowstorm"
	case MomentSpeedBurst:
		return "speed burst"
	case MomentGiftRush:
		return "gift rush"
	default:
		return "none"
	}
}

// MomentManager triggers one moment at a time at random intervals,
// with a cooldown after each.
type MomentManager struct {
	cfg       config.MomentConfig
	rng       *rand.Rand
	active    Moment
	remaining int
	next      int // Earliest frame for the next trigger
	cooldown  int
}

// NewMomentManager creates a moment manager drawing from rng.
func NewMomentManager(cfg config.MomentConfig, rng *rand.Rand) *MomentManager {
	m := &MomentManager{cfg: cfg, rng: rng}
	m.Reset()
	return m
}

// Reset clears any active moment and schedules the first one.
func (m *MomentManager) Reset() {
	m.active = MomentNone
	m.remaining = 0
	m.cooldown = 0
	m.next = m.cfg.IntervalMin
}

// Update advances the moment timers by one frame.
func (m *MomentManager) Update(frame int, emit func(Event)) {
	if m.active != MomentNone {
		m.remaining--
		if m.remaining <= 0 {
			ended := m.active
			m.active = MomentNone
			m.remaining = 0
			m.cooldown = m.cfg.Cooldown
			emit(MomentEndedEvent{Moment: ended})
			if ended == MomentSnowstorm {
				emit(SnowstormSurvivedEvent{})
			}
		}
		return
	}

	if m.cooldown > 0 {
		m.cooldown--
		return
	}

	if frame >= m.next {
		m.Start(momentKinds[m.rng.Intn(len(momentKinds))], frame, emit)
	}
}

// Start begins kind immediately and schedules the next trigger.
func (m *MomentManager) Start(kind Moment, frame int, emit func(Event)) {
	if kind == MomentNone {
		return
	}
	m.active = kind
	m.remaining = m.effect(kind).Duration
	m.cooldown = 0
	m.next = frame + m.cfg.IntervalMin + m.rng.Intn(m.cfg.IntervalMax-m.cfg.IntervalMin+1)
	emit(MomentStartedEvent{Moment: kind, Duration: m.remaining})
}

func (m *MomentManager) effect(kind Moment) config.MomentEffect {
	switch kind {
	case MomentSnowstorm:
		return m.cfg.Snowstorm
	case MomentSpeedBurst:
		return m.cfg.SpeedBurst
	default:
		return m.cfg.GiftRush
	}
}

// Active returns the running moment, MomentNone if there is none.
func (m *MomentManager) Active() Moment { return m.active }

// Remaining returns frames left on the running moment.
func (m *MomentManager) Remaining() int { return m.remaining }

// Next returns the earliest frame of the next trigger.
func (m *MomentManager) Next() int { return m.next }

// Cooldown returns frames until triggering is allowed again.
func (m *MomentManager) Cooldown() int { return m.cooldown }

// Effects returns the multipliers of the running moment.
func (m *MomentManager) Effects() MomentEffects {
	if m.active == MomentNone {
		return neutralMoment
	}
	e := m.effect(m.active)
	return MomentEffects{
		Visibility:    e.Visibility,
		Shake:         e.Shake,
		ObstacleSpawn: e.ObstacleSpawn,
		GiftSpawn:     e.GiftSpawn,
		Speed:         e.Speed,
		Score:         e.Score,
	}
}
