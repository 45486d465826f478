package core

// Action is a decoded player intent. Games never see raw keys.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionBomb     // place a bomb on the current tile
	ActionDetonate // fire the most recent remote bomb
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
)

var actionNames = map[Action]string{
	ActionNone:     "None",
	ActionUp:       "Up",
	ActionDown:     "Down",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionBomb:     "Bomb",
	ActionDetonate: "Detonate",
	ActionConfirm:  "Confirm",
	ActionBack:     "Back",
	ActionRestart:  "Restart",
	ActionQuit:     "Quit",
	ActionPause:    "Pause",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// IsMove reports whether the action is one of the four directions.
func (a Action) IsMove() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		return true
	}
	return false
}

// InputFrame is the set of actions triggered during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks a as triggered.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Move returns the first movement action in Up, Down, Left, Right order, or
// ActionNone.
func (f InputFrame) Move() Action {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if f.Actions[a] {
			return a
		}
	}
	return ActionNone
}

// Clear empties the frame for reuse.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone returns an independent copy.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
