package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"footballers-server/config"
	"footballers-server/game"
	"footballers-server/protocol"
)

func newTestServer(t *testing.T) (*httptest.Server, *SessionManager) {
	t.Helper()
	sm := NewSessionManager(SessionConfig{TickInterval: 5 * time.Millisecond})
	gs := NewGameServer(sm, config.DefaultServerConfig())
	r := chi.NewRouter()
	gs.Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		sm.CloseAll()
	})
	return srv, sm
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestWebSocketPeerReceivesInitFirst(t *testing.T) {
	for _, codec := range []protocol.Codec{protocol.JSON, protocol.Msgpack} {
		t.Run(codec.Name(), func(t *testing.T) {
			srv, sm := newTestServer(t)
			s := sm.Create()

			conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/"+s.ID+"?codec="+codec.Name()), nil)
			if err != nil {
				t.Fatalf("dial: %v", err)
			}
			defer conn.Close()
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))

			frameType, b, err := conn.ReadMessage()
			if err != nil {
				t.Fatal(err)
			}
			if frameType != codec.FrameType() {
				t.Fatalf("frame type = %d, want %d", frameType, codec.FrameType())
			}
			m, err := codec.Decode(b)
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := m.(protocol.Init); !ok {
				t.Fatalf("first message = %s, want init", m.Type())
			}

			in, err := codec.Encode(protocol.PlayerInput{Right: true})
			if err != nil {
				t.Fatal(err)
			}
			if err := conn.WriteMessage(codec.FrameType(), in); err != nil {
				t.Fatal(err)
			}

			// the peer's blue player starts moving once the input arrives
			startX, _ := game.KickoffPosition(game.Blue, 1)
			deadline := time.Now().Add(2 * time.Second)
			for time.Now().Before(deadline) {
				_, b, err := conn.ReadMessage()
				if err != nil {
					t.Fatal(err)
				}
				m, err := codec.Decode(b)
				if err != nil {
					t.Fatal(err)
				}
				st, ok := m.(protocol.StateUpdate)
				if !ok {
					continue
				}
				for _, p := range st.Players {
					if !p.Red && p.X > startX+1 {
						return
					}
				}
			}
			t.Fatal("input never reached the host simulation")
		})
	}
}

func TestWebSocketUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/nope"), nil)
	if err == nil {
		t.Fatal("expected dial error")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("response = %v, want 404", resp)
	}
}

func TestWebSocketBadCodec(t *testing.T) {
	srv, sm := newTestServer(t)
	s := sm.Create()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/"+s.ID+"?codec=xml"), nil)
	if err == nil {
		t.Fatal("expected dial error")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("response = %v, want 400", resp)
	}
}
