package core

// Action is a semantic input. The platform maps keys to actions; games
// only ever see actions.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft    // take the left branch at a fork
	ActionRight   // take the right branch at a fork
	ActionAbility // trigger the variant's ability
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Ability",
	"Confirm", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions pressed during one tick.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame { return InputFrame{} }

// Set adds a to the frame. Out-of-range actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.bits |= 1 << a
	}
}

// Has reports whether a was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action was pressed.
func (f InputFrame) Empty() bool { return f.bits == 0 }

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() { f.bits = 0 }
