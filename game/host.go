package game

import (
	"errors"
	"fmt"

	"footballers-server/config"
	"footballers-server/physics"
)

// HostPlayerID is the id of the host's own player.
const HostPlayerID = "host"

// ErrUnknownPlayer is returned for operations naming a player the host has no
// record of.
var ErrUnknownPlayer = errors.New("unknown player")

// Options configures a HostGame. Zero values select the compile-time defaults.
type Options struct {
	GoalTarget int
	ResetTime  int
	HostInput  InputSource // Polled once per tick for the host's own player
	Renderer   Renderer    // Called at the end of every frame
}

// HostGame is the authoritative simulation: world, players, ball and arbiter.
// It is not safe for concurrent use; a single goroutine must own it.
type HostGame struct {
	world     *physics.World
	ball      *physics.Body
	edges     []Edge
	goalPosts []Circle

	host    *Player
	players []*Player // Processing order: host first, then join order
	byID    map[string]*Player

	arbiter   *Arbiter
	hostInput InputSource
	renderer  Renderer
	started   bool
	ticks     uint64
}

// NewHostGame builds the pitch, the ball and the host's own red player.
func NewHostGame(opts Options) *HostGame {
	world := physics.NewWorld(config.PHYSICS_DT)
	g := &HostGame{
		world:     world,
		edges:     createPitchLines(world),
		goalPosts: createGoalPosts(world),
		ball:      createBall(world),
		byID:      make(map[string]*Player),
		arbiter:   NewArbiter(opts.GoalTarget, opts.ResetTime),
		hostInput: opts.HostInput,
		renderer:  opts.Renderer,
	}
	createStadiumWalls(world)
	if g.hostInput == nil {
		g.hostInput = Idle
	}
	g.host = g.addPlayer(HostPlayerID, Red, 1)
	return g
}

func (g *HostGame) addPlayer(id string, t Team, number int) *Player {
	p := &Player{
		ID:     id,
		Body:   createPlayerBody(g.world, t, number),
		Radius: config.PLAYER_RADIUS,
		Team:   t,
		Number: number,
	}
	g.players = append(g.players, p)
	g.byID[id] = p
	return p
}

// Join creates the player of a newly connected peer on the smaller team, red
// on a tie, and starts the simulation on the first join. Joining twice with
// the same id returns the existing player.
func (g *HostGame) Join(peerID string) *Player {
	if p, ok := g.byID[peerID]; ok {
		return p
	}
	red, blue := g.TeamSizes()
	team, number := Red, red+1
	if blue < red {
		team, number = Blue, blue+1
	}
	g.started = true
	return g.addPlayer(peerID, team, number)
}

// Leave zeroes the input of a disconnected peer. The player stays on the
// pitch so that team sizes and numbering remain stable.
func (g *HostGame) Leave(peerID string) error {
	p, ok := g.byID[peerID]
	if !ok {
		return fmt.Errorf("leave %q: %w", peerID, ErrUnknownPlayer)
	}
	p.Input = PlayerInput{}
	return nil
}

// SetInput replaces the buffered input of a player.
func (g *HostGame) SetInput(peerID string, in PlayerInput) error {
	p, ok := g.byID[peerID]
	if !ok {
		return fmt.Errorf("input for %q: %w", peerID, ErrUnknownPlayer)
	}
	p.Input = in
	return nil
}

// Player returns the player owned by peerID.
func (g *HostGame) Player(peerID string) (*Player, bool) {
	p, ok := g.byID[peerID]
	return p, ok
}

// TeamSizes counts the players of each team, the host's included.
func (g *HostGame) TeamSizes() (red, blue int) {
	for _, p := range g.players {
		if p.Team == Red {
			red++
		} else {
			blue++
		}
	}
	return red, blue
}

// Started reports whether a peer has joined and the simulation runs.
func (g *HostGame) Started() bool {
	return g.started
}

// Ticks returns the number of simulation steps taken.
func (g *HostGame) Ticks() uint64 {
	return g.ticks
}

// Arbiter exposes the match record.
func (g *HostGame) Arbiter() *Arbiter {
	return g.arbiter
}

// Ball returns the ball body.
func (g *HostGame) Ball() *physics.Body {
	return g.ball
}

// Advance runs the arbiter for one tick and puts every dynamic body back to
// kickoff when a goal pause runs out.
func (g *HostGame) Advance() {
	if !g.started {
		return
	}
	if g.arbiter.Check(g.ball.Position().X) {
		g.resetPositions()
	}
}

func (g *HostGame) resetPositions() {
	g.ball.SetPosition(config.STADIUM_WIDTH/2, config.STADIUM_HEIGHT/2)
	g.ball.Stop()
	for _, p := range g.players {
		p.resetPosition()
	}
}

// NextBroadcast selects the message for this frame. See Arbiter.NextBroadcast.
func (g *HostGame) NextBroadcast() BroadcastKind {
	if !g.started {
		return BroadcastNone
	}
	return g.arbiter.NextBroadcast()
}

// Frame runs one host frame: arbiter, tick and render. The caller sends the
// returned message kind to every connected peer.
func (g *HostGame) Frame() BroadcastKind {
	g.Advance()
	g.Tick()
	kind := g.NextBroadcast()
	if g.renderer != nil {
		g.renderer.Render(g.Display())
	}
	return kind
}

// PlayerCircles projects all players in processing order.
func (g *HostGame) PlayerCircles() []Circle {
	circles := make([]Circle, 0, len(g.players))
	for _, p := range g.players {
		circles = append(circles, p.Circle())
	}
	return circles
}

// BallCircle projects the ball.
func (g *HostGame) BallCircle() Circle {
	pos := g.ball.Position()
	return Circle{X: pos.X, Y: pos.Y, Radius: g.ball.Radius(), Number: -1}
}

// Edges returns the static pitch rectangles.
func (g *HostGame) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// GoalPosts returns the static goal post circles.
func (g *HostGame) GoalPosts() []Circle {
	return append([]Circle(nil), g.goalPosts...)
}

// Display projects the authoritative state for a renderer.
func (g *HostGame) Display() Display {
	return Display{
		Players:    g.PlayerCircles(),
		Ball:       g.BallCircle(),
		Edges:      g.edges,
		GoalPosts:  g.goalPosts,
		Score:      g.arbiter.Score,
		RedScored:  g.arbiter.RedScored,
		BlueScored: g.arbiter.BlueScored,
		Ended:      g.arbiter.Ended,
	}
}
