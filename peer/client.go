// Package peer is the client side of a match: it mirrors the host's messages
// into a local display and streams the local player's input back.
package peer

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"footballers-server/config"
	"footballers-server/game"
	"footballers-server/protocol"
)

// Config describes how to reach a host and what to do every tick.
type Config struct {
	ServerURL    string // Base websocket URL of the host, e.g. ws://localhost:8080
	SessionID    string
	Codec        protocol.Codec
	TickInterval time.Duration
	ResetTime    int              // Celebration length until the host's init announces its own
	Input        game.InputSource // Polled once per tick, idle when nil
	Renderer     game.Renderer    // Optional
}

// Client is a connected client peer.
type Client struct {
	cfg  Config
	conn *websocket.Conn
	game *game.ClientGame
}

// Dial connects to the session named in cfg.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Codec == nil {
		cfg.Codec = protocol.JSON
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = config.TICK_INTERVAL
	}
	if cfg.Input == nil {
		cfg.Input = game.Idle
	}

	u, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	u = u.JoinPath("ws", cfg.SessionID)
	u.RawQuery = url.Values{"codec": {cfg.Codec.Name()}}.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.Redacted(), err)
	}
	log.Printf("Connected to %s", u.Redacted())
	return &Client{cfg: cfg, conn: conn, game: game.NewClientGame(cfg.ResetTime)}, nil
}

// Run mirrors host messages and sends input until ctx is done or the host
// closes the connection. Messages and ticks are handled by the calling
// goroutine only.
func (c *Client) Run(ctx context.Context) error {
	defer c.conn.Close()

	incoming := make(chan protocol.Message, 64)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go c.readPump(incoming, readErr, done)

	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return nil

		case m := <-incoming:
			if err := protocol.Apply(c.game, m); err != nil {
				log.Printf("Client: WARNING %v", err)
			}

		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read: %w", err)

		case <-ticker.C:
			c.tick()
		}
	}
}

func (c *Client) tick() {
	c.game.Tick()

	frame, err := c.cfg.Codec.Encode(protocol.PlayerInput(c.cfg.Input.PlayerInput()))
	if err != nil {
		log.Printf("Client: ERROR encoding input: %v", err)
	} else if err := c.conn.WriteMessage(c.cfg.Codec.FrameType(), frame); err != nil {
		// the next tick sends a fresher input anyway
		log.Printf("Client: WARNING sending input: %v", err)
	}

	if c.cfg.Renderer != nil {
		c.cfg.Renderer.Render(c.game.Display())
	}
}

// readPump decodes frames for Run. Undecodable frames are dropped.
func (c *Client) readPump(incoming chan<- protocol.Message, readErr chan<- error, done <-chan struct{}) {
	for {
		_, b, err := c.conn.ReadMessage()
		if err != nil {
			readErr <- err
			return
		}
		m, err := c.cfg.Codec.Decode(b)
		if err != nil {
			log.Printf("Client: ERROR decoding host message: %v", err)
			continue
		}
		select {
		case incoming <- m:
		case <-done:
			return
		}
	}
}
