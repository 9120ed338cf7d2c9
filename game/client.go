package game

import "footballers-server/config"

// ClientGame is the display state of a client peer. It only mirrors what the
// host sends and never simulates.
type ClientGame struct {
	players    []Circle
	ball       Circle
	edges      []Edge
	goalPosts  []Circle
	score      Score
	redScored  bool
	blueScored bool
	ended      bool
	timer      int // Local celebration countdown mirroring the host's pause
	resetTime  int
}

// NewClientGame creates an empty display state. resetTime is the length of
// the local celebration in ticks until the host announces its own;
// non-positive selects RESET_TIME.
func NewClientGame(resetTime int) *ClientGame {
	if resetTime <= 0 {
		resetTime = config.RESET_TIME
	}
	return &ClientGame{ball: Circle{Number: -1}, resetTime: resetTime}
}

// ApplyInit replaces every collection with a full snapshot.
func (c *ClientGame) ApplyInit(edges []Edge, goalPosts, players []Circle, ball Circle) {
	c.edges = append([]Edge(nil), edges...)
	c.goalPosts = append([]Circle(nil), goalPosts...)
	c.players = append([]Circle(nil), players...)
	c.ball = ball
}

// SetResetTime adopts the host's goal pause length for later celebrations.
// Non-positive values are ignored.
func (c *ClientGame) SetResetTime(ticks int) {
	if ticks > 0 {
		c.resetTime = ticks
	}
}

// ApplyState replaces the dynamic positions.
func (c *ClientGame) ApplyState(players []Circle, ball Circle) {
	c.players = append(c.players[:0], players...)
	c.ball = ball
}

// ApplyGoal records a goal and starts the local celebration.
func (c *ClientGame) ApplyGoal(scorer Team, score Score) {
	c.score = score
	c.redScored = scorer == Red
	c.blueScored = scorer == Blue
	c.timer = c.resetTime
}

// ApplyEnded freezes the display on the final score.
func (c *ClientGame) ApplyEnded(final Score) {
	c.score = final
	c.ended = true
}

// Tick runs the celebration countdown and clears the scorer flags when it
// runs out.
func (c *ClientGame) Tick() {
	if c.timer == 0 {
		c.redScored, c.blueScored = false, false
		return
	}
	c.timer--
}

// Ended reports whether the host announced the end of the match.
func (c *ClientGame) Ended() bool {
	return c.ended
}

// Display projects the mirrored state for a renderer.
func (c *ClientGame) Display() Display {
	return Display{
		Players:    c.players,
		Ball:       c.ball,
		Edges:      c.edges,
		GoalPosts:  c.goalPosts,
		Score:      c.score,
		RedScored:  c.redScored,
		BlueScored: c.blueScored,
		Ended:      c.ended,
	}
}
