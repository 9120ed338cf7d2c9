package api

import (
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// GameService is the service name reported by the gRPC health server next to
// the overall "" entry.
const GameService = "footballers.Game"

// HealthServer serves the standard grpc.health.v1 service for orchestrators
// that probe over gRPC instead of HTTP.
type HealthServer struct {
	grpc   *grpc.Server
	health *health.Server
}

// NewHealthServer creates a health server reporting SERVING.
func NewHealthServer() *HealthServer {
	hs := health.NewServer()
	s := grpc.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus(GameService, healthpb.HealthCheckResponse_SERVING)
	return &HealthServer{grpc: s, health: hs}
}

// Serve accepts gRPC connections on lis until Stop.
func (h *HealthServer) Serve(lis net.Listener) error {
	log.Printf("gRPC health server listening on %s", lis.Addr())
	return h.grpc.Serve(lis)
}

// SetServing flips every reported service between SERVING and NOT_SERVING.
func (h *HealthServer) SetServing(serving bool) {
	if serving {
		h.health.Resume()
	} else {
		h.health.Shutdown()
	}
}

// Stop marks the services NOT_SERVING and stops the server gracefully.
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.grpc.GracefulStop()
}
