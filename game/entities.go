package game

import "fmt"

// Team identifies one of the two sides.
type Team int

const (
	Red Team = iota
	Blue
)

func (t Team) String() string {
	switch t {
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("team(%d)", int(t))
}

// MarshalText encodes the team as its name.
func (t Team) MarshalText() ([]byte, error) {
	if t != Red && t != Blue {
		return nil, fmt.Errorf("invalid team %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a team name.
func (t *Team) UnmarshalText(b []byte) error {
	switch string(b) {
	case "red":
		*t = Red
	case "blue":
		*t = Blue
	default:
		return fmt.Errorf("invalid team %q", string(b))
	}
	return nil
}

// Circle is the wire and render projection of a player, the ball or a goal post.
type Circle struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Radius float64 `json:"radius" msgpack:"radius"`
	Red    bool    `json:"red" msgpack:"red"`
	Number int     `json:"player_number" msgpack:"player_number"` // -1 for anything but a player
}

// Edge is a static pitch rectangle. X and Y are its top-left corner.
type Edge struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Width  float64 `json:"width" msgpack:"width"`
	Height float64 `json:"height" msgpack:"height"`
	White  bool    `json:"white" msgpack:"white"` // false for goal-mouth pieces
}

// NewEdge builds an Edge from its center and size.
func NewEdge(cx, cy, width, height float64, white bool) Edge {
	return Edge{X: cx - width/2, Y: cy - height/2, Width: width, Height: height, White: white}
}

// Center returns the center of e.
func (e Edge) Center() (float64, float64) {
	return e.X + e.Width/2, e.Y + e.Height/2
}

// Score holds both team counters.
type Score struct {
	Red  int `json:"red_score" msgpack:"red_score"`
	Blue int `json:"blue_score" msgpack:"blue_score"`
}

// Total returns the number of goals scored so far.
func (s Score) Total() int {
	return s.Red + s.Blue
}

// Of returns the counter of team t.
func (s Score) Of(t Team) int {
	if t == Red {
		return s.Red
	}
	return s.Blue
}
