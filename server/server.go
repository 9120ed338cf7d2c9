package server

import (
	"errors"
	"log"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"footballers-server/config"
	"footballers-server/protocol"
)

// GameServer upgrades peer connections and attaches them to sessions.
type GameServer struct {
	upgrader   websocket.Upgrader
	sessions   *SessionManager
	sendBuffer int
}

// NewGameServer creates a server for the sessions of sm.
func NewGameServer(sm *SessionManager, cfg config.ServerConfig) *GameServer {
	origins := cfg.AllowedOrigins
	return &GameServer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
			},
		},
		sessions:   sm,
		sendBuffer: cfg.SendBuffer,
	}
}

// Routes mounts the websocket endpoint on r.
func (gs *GameServer) Routes(r chi.Router) {
	r.Get("/ws/{sessionID}", gs.HandleConnections)
}

// HandleConnections upgrades a request to a websocket peer of the session
// named in the path. The optional codec query parameter selects the wire
// format, the session's default otherwise.
func (gs *GameServer) HandleConnections(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	session, err := gs.sessions.Get(sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	codec := session.Codec()
	if name := r.URL.Query().Get("codec"); name != "" {
		if codec, err = protocol.NewCodec(name); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	conn, err := gs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewWebSocketClient(conn, uuid.NewString(), codec, gs.sendBuffer)
	go client.WritePump()

	res, err := session.Join(r.Context(), client)
	if err != nil {
		if errors.Is(err, ErrSessionClosed) {
			log.Printf("Session %s: rejected peer %s, session closed.", sessionID, client.peerID)
		} else {
			log.Printf("Session %s: ERROR joining peer %s: %v", sessionID, client.peerID, err)
		}
		close(client.done)
		return
	}
	log.Printf("Peer %s (%s) assigned to session %s as %s #%d.", res.PeerID, conn.RemoteAddr().String(), sessionID, res.Team, res.Number)

	go client.ReadPump(session)
}
