package server

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"footballers-server/config"
	"footballers-server/game"
	"footballers-server/protocol"
)

// ErrSessionClosed is returned when a command reaches a session that has stopped.
var ErrSessionClosed = errors.New("session closed")

// SessionConfig configures the match hosted by a session.
type SessionConfig struct {
	TickInterval time.Duration
	GoalTarget   int
	ResetTicks   int
	Codec        protocol.Codec   // Default codec of peers that do not ask for one
	HostInput    game.InputSource // Input of the host's own player, idle when nil
	Renderer     game.Renderer    // Optional local view of the host
}

// Session is one authoritative match. A single goroutine owns the game: peers
// talk to it through Inbox only.
type Session struct {
	ID        string
	Inbox     chan any
	CreatedAt time.Time

	game     *game.HostGame
	codec    protocol.Codec
	peers    map[string]Peer
	interval time.Duration
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once
}

// NewSession creates a session and starts its loop.
func NewSession(id string, cfg SessionConfig) *Session {
	log.Printf("Session %s: Initializing...", id)
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = config.TICK_INTERVAL
	}
	if cfg.Codec == nil {
		cfg.Codec = protocol.JSON
	}

	s := &Session{
		ID:        id,
		Inbox:     make(chan any, 256),
		CreatedAt: time.Now(),
		game: game.NewHostGame(game.Options{
			GoalTarget: cfg.GoalTarget,
			ResetTime:  cfg.ResetTicks,
			HostInput:  cfg.HostInput,
			Renderer:   cfg.Renderer,
		}),
		codec:    cfg.Codec,
		peers:    make(map[string]Peer),
		interval: cfg.TickInterval,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	go s.Run()
	log.Printf("Session %s: Initialized and running.", id)
	return s
}

// Run is the session loop: commands and frames are handled one at a time.
func (s *Session) Run() {
	ticker := time.NewTicker(s.interval)
	log.Printf("Session %s: Starting frame loop every %s.", s.ID, s.interval)
	defer func() {
		ticker.Stop()
		close(s.stopped)
		log.Printf("Session %s: Frame loop stopped.", s.ID)
	}()

	for {
		select {
		case <-s.done:
			return
		case cmd := <-s.Inbox:
			s.handleCommand(cmd)
		case <-ticker.C:
			s.frame()
		}
	}
}

func (s *Session) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		s.join(c)
	case Input:
		if _, ok := s.peers[c.PeerID]; !ok {
			log.Printf("Session %s: WARNING input from unknown peer %s dropped.", s.ID, c.PeerID)
			return
		}
		if err := s.game.SetInput(c.PeerID, c.Input); err != nil {
			log.Printf("Session %s: WARNING %v", s.ID, err)
		}
	case Leave:
		if _, ok := s.peers[c.PeerID]; !ok {
			return
		}
		delete(s.peers, c.PeerID)
		if err := s.game.Leave(c.PeerID); err != nil {
			log.Printf("Session %s: WARNING %v", s.ID, err)
		}
		log.Printf("Session %s: Peer %s left, %d remaining.", s.ID, c.PeerID, len(s.peers))
	case Snapshot:
		c.Reply <- s.info()
	default:
		log.Printf("Session %s: WARNING unknown command %T.", s.ID, cmd)
	}
}

func (s *Session) join(c Join) {
	id := c.Peer.PeerID()
	player := s.game.Join(id)
	s.peers[id] = c.Peer
	log.Printf("Session %s: Peer %s joined as %s #%d.", s.ID, id, player.Team, player.Number)

	for _, msg := range protocol.JoinMessages(s.game) {
		frame, err := c.Peer.Codec().Encode(msg)
		if err != nil {
			log.Printf("Session %s: ERROR encoding %s for peer %s: %v", s.ID, msg.Type(), id, err)
			continue
		}
		if !c.Peer.Enqueue(frame) {
			log.Printf("Session %s: WARNING Peer %s send buffer full when sending %s.", s.ID, id, msg.Type())
		}
	}

	if c.Reply != nil {
		c.Reply <- JoinResult{PeerID: id, Team: player.Team, Number: player.Number}
	}
}

// frame runs one host frame and broadcasts its message. Each codec encodes
// the message once.
func (s *Session) frame() {
	msg, ok := protocol.ForBroadcast(s.game, s.game.Frame())
	if !ok || len(s.peers) == 0 {
		return
	}
	switch msg.(type) {
	case protocol.GoalScored, protocol.MatchEnded:
		log.Printf("Session %s: Broadcasting %s (score %+v).", s.ID, msg.Type(), s.game.Arbiter().Score)
	}

	frames := make(map[string][]byte, 2)
	for id, p := range s.peers {
		codec := p.Codec()
		frame, cached := frames[codec.Name()]
		if !cached {
			var err error
			frame, err = codec.Encode(msg)
			if err != nil {
				log.Printf("Session %s: ERROR encoding %s: %v", s.ID, msg.Type(), err)
				return
			}
			frames[codec.Name()] = frame
		}
		if !p.Enqueue(frame) {
			log.Printf("Session %s: WARNING Peer %s send buffer full, %s dropped.", s.ID, id, msg.Type())
		}
	}
}

func (s *Session) info() SessionInfo {
	red, blue := s.game.TeamSizes()
	return SessionInfo{
		ID:        s.ID,
		Peers:     len(s.peers),
		Players:   red + blue,
		Phase:     s.game.Arbiter().Phase().String(),
		Score:     s.game.Arbiter().Score,
		Ticks:     s.game.Ticks(),
		Started:   s.game.Started(),
		Codec:     s.codec.Name(),
		CreatedAt: s.CreatedAt,
	}
}

// Codec returns the default codec of the session's peers.
func (s *Session) Codec() protocol.Codec {
	return s.codec
}

// Send delivers a command to the session loop.
func (s *Session) Send(ctx context.Context, cmd any) error {
	select {
	case s.Inbox <- cmd:
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Join registers a peer and waits for its player assignment.
func (s *Session) Join(ctx context.Context, p Peer) (JoinResult, error) {
	reply := make(chan JoinResult, 1)
	if err := s.Send(ctx, Join{Peer: p, Reply: reply}); err != nil {
		return JoinResult{}, err
	}
	select {
	case res := <-reply:
		return res, nil
	case <-s.done:
		return JoinResult{}, ErrSessionClosed
	case <-ctx.Done():
		return JoinResult{}, ctx.Err()
	}
}

// Info asks the session loop for a summary.
func (s *Session) Info(ctx context.Context) (SessionInfo, error) {
	reply := make(chan SessionInfo, 1)
	if err := s.Send(ctx, Snapshot{Reply: reply}); err != nil {
		return SessionInfo{}, err
	}
	select {
	case info := <-reply:
		return info, nil
	case <-s.done:
		return SessionInfo{}, ErrSessionClosed
	case <-ctx.Done():
		return SessionInfo{}, ctx.Err()
	}
}

// Done is closed once the session is asked to stop.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close stops the session loop and waits for it to exit.
func (s *Session) Close() {
	s.once.Do(func() {
		log.Printf("Session %s: Closing...", s.ID)
		close(s.done)
	})
	<-s.stopped
}
