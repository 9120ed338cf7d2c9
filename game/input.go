package game

// PlayerInput is the intent of one peer for one tick. It is transmitted
// verbatim and never validated: contradicting directions are resolved when
// applied (up wins over down, left wins over right).
type PlayerInput struct {
	Up    bool `json:"up" msgpack:"up"`
	Down  bool `json:"down" msgpack:"down"`
	Left  bool `json:"left" msgpack:"left"`
	Right bool `json:"right" msgpack:"right"`
	Shoot bool `json:"shoot" msgpack:"shoot"`
}

// Impulse returns the unit direction of the directional intents, at most one
// component per axis.
func (in PlayerInput) Impulse() (dx, dy float64) {
	if in.Up {
		dy = -1
	} else if in.Down {
		dy = 1
	}
	if in.Left {
		dx = -1
	} else if in.Right {
		dx = 1
	}
	return dx, dy
}

// InputSource is the local-input collaborator polled once per local tick.
type InputSource interface {
	PlayerInput() PlayerInput
}

// InputFunc adapts a function to InputSource.
type InputFunc func() PlayerInput

func (f InputFunc) PlayerInput() PlayerInput {
	return f()
}

// Idle is an InputSource that never moves nor shoots.
var Idle InputSource = InputFunc(func() PlayerInput { return PlayerInput{} })
