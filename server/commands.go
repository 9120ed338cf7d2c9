package server

import (
	"time"

	"footballers-server/game"
	"footballers-server/protocol"
)

// Peer is a connected client as seen by a session.
type Peer interface {
	PeerID() string
	Codec() protocol.Codec
	// Enqueue hands a frame to the peer's writer without blocking. It reports
	// false when the frame was dropped.
	Enqueue(frame []byte) bool
}

// Join adds a peer and its player to the session.
type Join struct {
	Peer  Peer
	Reply chan<- JoinResult
}

// JoinResult describes the player created for a joining peer.
type JoinResult struct {
	PeerID string
	Team   game.Team
	Number int
}

// Input replaces the buffered input of a peer's player.
type Input struct {
	PeerID string
	Input  game.PlayerInput
}

// Leave removes a peer from the broadcast set.
type Leave struct {
	PeerID string
}

// Snapshot asks the session for a summary of its state.
type Snapshot struct {
	Reply chan<- SessionInfo
}

// SessionInfo is the summary of a session exposed by the API.
type SessionInfo struct {
	ID        string     `json:"id"`
	Peers     int        `json:"peers"`
	Players   int        `json:"players"`
	Phase     string     `json:"phase"`
	Score     game.Score `json:"score"`
	Ticks     uint64     `json:"ticks"`
	Started   bool       `json:"started"`
	Codec     string     `json:"codec"`
	CreatedAt time.Time  `json:"created_at"`
}
