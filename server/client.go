package server

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"footballers-server/protocol"
)

const (
	// WebSocket heartbeat settings to detect disconnected clients
	PING_INTERVAL = 10 * time.Second // Frequency of sending ping messages
	PONG_WAIT     = 60 * time.Second // Time to wait for a pong response before considering client disconnected
	WRITE_WAIT    = 10 * time.Second // Deadline of a single frame write
)

// WebSocketClient represents a single connected peer.
type WebSocketClient struct {
	conn   *websocket.Conn // The raw WebSocket connection
	send   chan []byte     // Outgoing frames, dropped when full
	peerID string          // The unique peer ID, also the id of its player
	codec  protocol.Codec  // Wire format negotiated at upgrade
	done   chan struct{}   // Closed when the read side terminates
}

// NewWebSocketClient creates and returns a new WebSocketClient instance.
func NewWebSocketClient(conn *websocket.Conn, peerID string, codec protocol.Codec, buffer int) *WebSocketClient {
	if buffer <= 0 {
		buffer = 256
	}
	return &WebSocketClient{
		conn:   conn,
		send:   make(chan []byte, buffer),
		peerID: peerID,
		codec:  codec,
		done:   make(chan struct{}),
	}
}

func (c *WebSocketClient) PeerID() string {
	return c.peerID
}

func (c *WebSocketClient) Codec() protocol.Codec {
	return c.codec
}

// Enqueue queues a frame for the WritePump. Routine updates are superseded by
// the next frame, so a full buffer drops rather than blocks the session.
func (c *WebSocketClient) Enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// ReadPump continuously reads frames from the connection and forwards them to
// the session. It leaves the session and signals the WritePump on exit.
func (c *WebSocketClient) ReadPump(session *Session) {
	// Leave the session and close the connection when this goroutine exits.
	defer func() {
		session.leave(c.peerID) // Zero the player's input, stop broadcasting to it
		close(c.done)           // Signal the WritePump to terminate
		c.conn.Close()          // Close the underlying WebSocket connection
	}()

	// Set a read deadline and a pong handler for heartbeat.
	c.conn.SetReadDeadline(time.Now().Add(PONG_WAIT))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(PONG_WAIT)) // Extend deadline on pong
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage() // Read frames
		if err != nil {
			// Log unexpected close errors, indicating a peer disconnection.
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Client %s: Unexpected WebSocket close error: %v", c.peerID, err)
			} else {
				log.Printf("Client %s: WebSocket read error (non-unexpected close): %v", c.peerID, err)
			}
			break // Exit loop on any read error, triggering defer
		}
		// Decode the frame and forward it to the session loop.
		if !session.handleClientMessage(c, message) {
			break // Session stopped
		}
	}
}

// WritePump sends queued frames and periodic pings until the read side ends.
func (c *WebSocketClient) WritePump() {
	ticker := time.NewTicker(PING_INTERVAL) // Ticker for sending periodic pings
	defer func() {
		ticker.Stop()  // Stop the ticker on exit
		c.conn.Close() // Ensure connection is closed on exit
	}()

	frameType := c.codec.FrameType()
	for {
		select {
		case message := <-c.send:
			// Send each frame as a separate WebSocket message in the codec's frame type.
			c.conn.SetWriteDeadline(time.Now().Add(WRITE_WAIT))
			if err := c.conn.WriteMessage(frameType, message); err != nil {
				log.Printf("Client %s: Error sending message: %v", c.peerID, err)
				return // Terminate goroutine on write error
			}

		case <-ticker.C:
			// Send a ping message on ticker tick.
			c.conn.SetWriteDeadline(time.Now().Add(WRITE_WAIT)) // Set write deadline for ping
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Client %s: Error sending ping: %v", c.peerID, err)
				return // Terminate goroutine on ping error
			}

		case <-c.done:
			// Received termination signal from ReadPump or a failed join.
			log.Printf("Client %s: WritePump received done signal, terminating.", c.peerID)
			err := c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Printf("Client %s: Error sending final close message: %v", c.peerID, err)
			}
			return // Terminate goroutine
		}
	}
}
