package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"footballers-server/config"
	"footballers-server/server"
)

func newTestAPI(t *testing.T) (*httptest.Server, *server.SessionManager, *MetricsHandler) {
	t.Helper()
	sm := server.NewSessionManager(server.SessionConfig{TickInterval: 10 * time.Millisecond})
	mh := NewMetricsHandler(sm)
	srv := httptest.NewServer(NewAPIRouter(config.DefaultServerConfig(), sm, mh))
	t.Cleanup(func() {
		srv.Close()
		sm.CloseAll()
	})
	return srv, sm, mh
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestAPI(t)

	resp, err := http.Get(srv.URL + "/v1/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health = %d %v", resp.StatusCode, body)
	}
}

func TestSessionLifecycle(t *testing.T) {
	srv, _, _ := newTestAPI(t)

	resp, err := http.Post(srv.URL+"/v1/sessions", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	var created server.SessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated || created.ID == "" || created.Players != 1 || created.Started {
		t.Fatalf("create = %d %+v", resp.StatusCode, created)
	}

	resp, err = http.Get(srv.URL + "/v1/sessions/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	var got server.SessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got.ID != created.ID || got.Phase != "playing" {
		t.Fatalf("get = %+v", got)
	}

	resp, err = http.Get(srv.URL + "/v1/sessions")
	if err != nil {
		t.Fatal(err)
	}
	var list []server.SessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v", list)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/sessions/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/v1/sessions/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", resp.StatusCode)
	}
}

func TestMetrics(t *testing.T) {
	srv, sm, mh := newTestAPI(t)
	sm.Create()
	sm.Create()

	var m MetricsResponse
	resp, err := http.Get(srv.URL + "/v1/metrics")
	if err != nil {
		t.Fatal(err)
	}
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if m.Sessions.Total != 2 || m.Sessions.Waiting != 2 || m.Sessions.Players != 2 {
		t.Fatalf("session metrics = %+v", m.Sessions)
	}
	if m.Health != HealthHealthy || m.Workload.CurrentLoad != "low" {
		t.Fatalf("health = %s load = %s", m.Health, m.Workload.CurrentLoad)
	}

	mh.SetStatus(WebSocketStopping)
	resp, err = http.Get(srv.URL + "/v1/metrics/health")
	if err != nil {
		t.Fatal(err)
	}
	var h map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if h["health"] != string(HealthMaintenance) {
		t.Fatalf("health during shutdown = %v", h["health"])
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _, _ := newTestAPI(t)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/v1/sessions", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatal("missing Access-Control-Allow-Origin")
	}
}

func TestGRPCHealth(t *testing.T) {
	lis := bufconn.Listen(1 << 16)
	hs := NewHealthServer()
	go hs.Serve(lis)
	defer hs.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, service := range []string{"", GameService} {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		if err != nil {
			t.Fatalf("check %q: %v", service, err)
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			t.Fatalf("check %q = %s", service, resp.GetStatus())
		}
	}

	hs.SetServing(false)
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: GameService})
	if err != nil {
		t.Fatal(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status after shutdown = %s", resp.GetStatus())
	}
}
