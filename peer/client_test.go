package peer

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"footballers-server/config"
	"footballers-server/game"
	"footballers-server/protocol"
	"footballers-server/server"
)

func TestClientMirrorsHost(t *testing.T) {
	sm := server.NewSessionManager(server.SessionConfig{TickInterval: 5 * time.Millisecond})
	defer sm.CloseAll()
	r := chi.NewRouter()
	server.NewGameServer(sm, config.DefaultServerConfig()).Routes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()
	session := sm.Create()

	var (
		mu   sync.Mutex
		last game.Display
	)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := Dial(ctx, Config{
		ServerURL:    "ws" + strings.TrimPrefix(srv.URL, "http"),
		SessionID:    session.ID,
		Codec:        protocol.Msgpack,
		TickInterval: 5 * time.Millisecond,
		Input:        game.InputFunc(func() game.PlayerInput { return game.PlayerInput{Left: true} }),
		Renderer: game.RenderFunc(func(d game.Display) {
			mu.Lock()
			last = d
			mu.Unlock()
		}),
	})
	if err != nil {
		t.Fatal(err)
	}

	runCtx, stop := context.WithCancel(ctx)
	errc := make(chan error, 1)
	go func() { errc <- client.Run(runCtx) }()

	startX, _ := game.KickoffPosition(game.Blue, 1)
	moved := false
	for !moved && ctx.Err() == nil {
		time.Sleep(10 * time.Millisecond)
		mu.Lock()
		if len(last.Edges) == 12 {
			for _, p := range last.Players {
				if !p.Red && p.X < startX-1 {
					moved = true
				}
			}
		}
		mu.Unlock()
	}
	if !moved {
		t.Fatal("client display never showed its own player moving")
	}

	stop()
	if err := <-errc; err != nil {
		t.Fatalf("Run = %v", err)
	}
}

func TestDialUnknownSession(t *testing.T) {
	sm := server.NewSessionManager(server.SessionConfig{})
	defer sm.CloseAll()
	r := chi.NewRouter()
	server.NewGameServer(sm, config.DefaultServerConfig()).Routes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	_, err := Dial(context.Background(), Config{
		ServerURL: "ws" + strings.TrimPrefix(srv.URL, "http"),
		SessionID: "missing",
	})
	if err == nil {
		t.Fatal("expected dial error")
	}
}
