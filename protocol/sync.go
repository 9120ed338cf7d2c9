package protocol

import (
	"fmt"

	"footballers-server/game"
)

// NewInit snapshots everything a joining peer needs.
func NewInit(g *game.HostGame) Init {
	return Init{
		Edges:     g.Edges(),
		GoalPosts: g.GoalPosts(),
		Players:   g.PlayerCircles(),
		Ball:      g.BallCircle(),
		ResetTime: g.Arbiter().ResetTime(),
	}
}

// NewStateUpdate snapshots the dynamic positions.
func NewStateUpdate(g *game.HostGame) StateUpdate {
	return StateUpdate{Players: g.PlayerCircles(), Ball: g.BallCircle()}
}

// ForBroadcast builds the message of the given kind. It reports false for
// BroadcastNone.
func ForBroadcast(g *game.HostGame, kind game.BroadcastKind) (Message, bool) {
	a := g.Arbiter()
	switch kind {
	case game.BroadcastState:
		return NewStateUpdate(g), true
	case game.BroadcastGoal:
		team, _ := a.Scorer()
		return GoalScored{ScoringTeam: team, Score: a.Score}, true
	case game.BroadcastEnded:
		return MatchEnded{FinalScore: a.Score}, true
	}
	return nil, false
}

// JoinMessages returns what a newly connected peer receives: the snapshot,
// followed by the end announcement when it joins a finished match.
func JoinMessages(g *game.HostGame) []Message {
	msgs := []Message{NewInit(g)}
	if a := g.Arbiter(); a.Ended {
		msgs = append(msgs, MatchEnded{FinalScore: a.Score})
	}
	return msgs
}

// Apply mirrors a host message into the client display state. Client to host
// messages are rejected.
func Apply(c *game.ClientGame, m Message) error {
	switch msg := m.(type) {
	case Init:
		c.ApplyInit(msg.Edges, msg.GoalPosts, msg.Players, msg.Ball)
		c.SetResetTime(msg.ResetTime)
	case StateUpdate:
		c.ApplyState(msg.Players, msg.Ball)
	case GoalScored:
		c.ApplyGoal(msg.ScoringTeam, msg.Score)
	case MatchEnded:
		c.ApplyEnded(msg.FinalScore)
	default:
		return fmt.Errorf("apply %T: %w", m, ErrUnknownMessage)
	}
	return nil
}
