package protocol

import "footballers-server/game"

// Message type tags carried by every envelope.
const (
	TypeInit        = "init"
	TypeStateUpdate = "state_update"
	TypeGoalScored  = "goal_scored"
	TypeMatchEnded  = "match_ended"
	TypePlayerInput = "player_input"
)

// Message is one variant of the wire tagged union.
type Message interface {
	Type() string
}

// Init is the full snapshot sent once to a newly connected peer.
type Init struct {
	Edges     []game.Edge   `json:"edges" msgpack:"edges"`
	GoalPosts []game.Circle `json:"goal_posts" msgpack:"goal_posts"`
	Players   []game.Circle `json:"players" msgpack:"players"`
	Ball      game.Circle   `json:"ball" msgpack:"ball"`
	ResetTime int           `json:"reset_time,omitempty" msgpack:"reset_time,omitempty"` // Goal pause length in ticks
}

// StateUpdate carries the dynamic positions of one frame.
type StateUpdate struct {
	Players []game.Circle `json:"players" msgpack:"players"`
	Ball    game.Circle   `json:"ball" msgpack:"ball"`
}

// GoalScored replaces the state update of the frame right after a goal.
type GoalScored struct {
	ScoringTeam game.Team  `json:"scoring_team" msgpack:"scoring_team"`
	Score       game.Score `json:"score" msgpack:"score"`
}

// MatchEnded is sent once when the match is over.
type MatchEnded struct {
	FinalScore game.Score `json:"final_score" msgpack:"final_score"`
}

// PlayerInput is the only client to host message.
type PlayerInput game.PlayerInput

func (Init) Type() string        { return TypeInit }
func (StateUpdate) Type() string { return TypeStateUpdate }
func (GoalScored) Type() string  { return TypeGoalScored }
func (MatchEnded) Type() string  { return TypeMatchEnded }
func (PlayerInput) Type() string { return TypePlayerInput }
