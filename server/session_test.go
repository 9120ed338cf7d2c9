package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"footballers-server/config"
	"footballers-server/game"
	"footballers-server/protocol"
)

type fakePeer struct {
	id     string
	codec  protocol.Codec
	frames chan []byte
}

func newFakePeer(id string) *fakePeer {
	return &fakePeer{id: id, codec: protocol.JSON, frames: make(chan []byte, 64)}
}

func (f *fakePeer) PeerID() string        { return f.id }
func (f *fakePeer) Codec() protocol.Codec { return f.codec }

func (f *fakePeer) Enqueue(frame []byte) bool {
	select {
	case f.frames <- frame:
		return true
	default:
		return false
	}
}

func (f *fakePeer) next(t *testing.T) protocol.Message {
	t.Helper()
	select {
	case b := <-f.frames:
		m, err := f.codec.Decode(b)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		return m
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a frame")
	}
	return nil
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("test", SessionConfig{TickInterval: 5 * time.Millisecond})
	t.Cleanup(s.Close)
	return s
}

func TestSessionJoinSendsInitFirst(t *testing.T) {
	s := newTestSession(t)
	peer := newFakePeer("p1")

	res, err := s.Join(context.Background(), peer)
	if err != nil {
		t.Fatal(err)
	}
	if res.Team != game.Blue || res.Number != 1 {
		t.Fatalf("join result = %+v, want blue #1", res)
	}

	init, ok := peer.next(t).(protocol.Init)
	if !ok {
		t.Fatal("first frame is not init")
	}
	if len(init.Players) != 2 || len(init.Edges) != 12 || len(init.GoalPosts) != 4 {
		t.Fatalf("init = %d players %d edges %d posts", len(init.Players), len(init.Edges), len(init.GoalPosts))
	}
	if init.ResetTime != config.RESET_TIME {
		t.Errorf("init reset time = %d, want %d", init.ResetTime, config.RESET_TIME)
	}

	if _, ok := peer.next(t).(protocol.StateUpdate); !ok {
		t.Fatal("expected state updates after init")
	}
}

func TestSessionLeaveKeepsPlayer(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	if _, err := s.Join(ctx, newFakePeer("p1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Send(ctx, Input{PeerID: "p1", Input: game.PlayerInput{Up: true}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Send(ctx, Input{PeerID: "ghost", Input: game.PlayerInput{Up: true}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Send(ctx, Leave{PeerID: "p1"}); err != nil {
		t.Fatal(err)
	}

	info, err := s.Info(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if info.Peers != 0 || info.Players != 2 || !info.Started {
		t.Fatalf("info after leave = %+v", info)
	}
	if info.Phase != game.Playing.String() || info.Codec != "json" {
		t.Fatalf("info = %+v", info)
	}
}

func TestSessionClosed(t *testing.T) {
	s := NewSession("closed", SessionConfig{})
	s.Close()
	s.Close()

	if _, err := s.Join(context.Background(), newFakePeer("p1")); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("join error = %v, want ErrSessionClosed", err)
	}
	if _, err := s.Info(context.Background()); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("info error = %v, want ErrSessionClosed", err)
	}
}

func TestSessionManager(t *testing.T) {
	sm := NewSessionManager(SessionConfig{TickInterval: 10 * time.Millisecond})
	defer sm.CloseAll()

	a := sm.Create()
	time.Sleep(time.Millisecond)
	b := sm.Create()
	if a.ID == b.ID {
		t.Fatal("duplicate session ids")
	}

	got, err := sm.Get(a.ID)
	if err != nil || got != a {
		t.Fatalf("Get(%s) = %v, %v", a.ID, got, err)
	}
	list := sm.List()
	if len(list) != 2 || list[0] != a || list[1] != b {
		t.Fatalf("List = %v", list)
	}

	if err := sm.Close(a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := sm.Get(a.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get after close = %v, want ErrSessionNotFound", err)
	}
	if err := sm.Close(a.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("second Close = %v, want ErrSessionNotFound", err)
	}
}
