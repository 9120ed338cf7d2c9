package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"footballers-server/game"
	"footballers-server/server"
)

// HealthStatus represents the overall health of the system
type HealthStatus string

const (
	HealthHealthy     HealthStatus = "healthy"
	HealthWarning     HealthStatus = "warning"
	HealthCritical    HealthStatus = "critical"
	HealthDown        HealthStatus = "down"
	HealthMaintenance HealthStatus = "maintenance"
)

// WebSocketStatus represents the state of the WebSocket server
type WebSocketStatus string

const (
	WebSocketRunning  WebSocketStatus = "running"
	WebSocketStopping WebSocketStatus = "stopping"
	WebSocketError    WebSocketStatus = "error"
)

// SessionMetrics counts sessions by phase and their participants
type SessionMetrics struct {
	Total    int                  `json:"total"`
	Waiting  int                  `json:"waiting"` // no peer joined yet
	Playing  int                  `json:"playing"`
	Paused   int                  `json:"goal_pause"`
	Ended    int                  `json:"ended"`
	Players  int                  `json:"players"`
	Goals    int                  `json:"goals"`
	Sessions []server.SessionInfo `json:"sessions,omitempty"`
}

// WorkloadMetrics tracks the current system workload
type WorkloadMetrics struct {
	LoadPercentage float64 `json:"load_percentage"`
	MaxSessions    int     `json:"max_sessions"`
	MaxPeers       int     `json:"max_peers"`
	CurrentLoad    string  `json:"current_load"` // "low", "medium", "high", "critical"
}

// WebSocketServerMetrics holds WebSocket server status
type WebSocketServerMetrics struct {
	Status            WebSocketStatus `json:"status"`
	ActiveConnections int             `json:"active_connections"`
	UptimeSec         int64           `json:"uptime_sec"`
}

// MetricsResponse is the complete metrics response structure
type MetricsResponse struct {
	Timestamp         time.Time              `json:"timestamp"`
	Health            HealthStatus           `json:"health"`
	HealthDescription string                 `json:"health_description"`
	Sessions          SessionMetrics         `json:"sessions"`
	WebSocket         WebSocketServerMetrics `json:"websocket"`
	Workload          WorkloadMetrics        `json:"workload"`
	ServerUptime      int64                  `json:"server_uptime_sec"`
}

// MetricsHandler manages metrics collection and reporting
type MetricsHandler struct {
	sessions        *server.SessionManager
	mu              sync.RWMutex
	serverStartTime time.Time
	status          WebSocketStatus

	maxSessions int
	maxPeers    int
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(sm *server.SessionManager) *MetricsHandler {
	return &MetricsHandler{
		sessions:        sm,
		serverStartTime: time.Now(),
		status:          WebSocketRunning,
		maxSessions:     200,
		maxPeers:        2000,
	}
}

// Routes registers metrics routes
func (h *MetricsHandler) Routes(r chi.Router) {
	r.Get("/metrics", h.GetMetrics)
	r.Get("/metrics/health", h.GetHealth)
	r.Get("/metrics/workload", h.GetWorkload)
}

// SetStatus records the state of the websocket server, e.g. during shutdown.
func (h *MetricsHandler) SetStatus(s WebSocketStatus) {
	h.mu.Lock()
	h.status = s
	h.mu.Unlock()
}

// GetMetrics returns complete metrics
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.collectMetrics(r.Context()))
}

// GetHealth returns only health status
func (h *MetricsHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	metrics := h.collectMetrics(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"timestamp":   metrics.Timestamp,
		"health":      metrics.Health,
		"description": metrics.HealthDescription,
		"uptime_sec":  metrics.ServerUptime,
	})
}

// GetWorkload returns only workload metrics
func (h *MetricsHandler) GetWorkload(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.collectMetrics(r.Context()).Workload)
}

// collectMetrics gathers all metrics from the system
func (h *MetricsHandler) collectMetrics(ctx context.Context) *MetricsResponse {
	h.mu.RLock()
	status := h.status
	h.mu.RUnlock()

	sessionMetrics, peers := h.collectSessionMetrics(ctx)
	workload := h.calculateWorkloadMetrics(sessionMetrics.Total, peers)
	ws := WebSocketServerMetrics{
		Status:            status,
		ActiveConnections: peers,
		UptimeSec:         int64(time.Since(h.serverStartTime).Seconds()),
	}
	health, desc := determineHealth(workload, ws)

	return &MetricsResponse{
		Timestamp:         time.Now(),
		Health:            health,
		HealthDescription: desc,
		Sessions:          sessionMetrics,
		WebSocket:         ws,
		Workload:          workload,
		ServerUptime:      ws.UptimeSec,
	}
}

// collectSessionMetrics asks every session loop for its summary.
func (h *MetricsHandler) collectSessionMetrics(ctx context.Context) (SessionMetrics, int) {
	ctx, cancel := context.WithTimeout(ctx, infoTimeout)
	defer cancel()

	var m SessionMetrics
	peers := 0
	for _, s := range h.sessions.List() {
		info, err := s.Info(ctx)
		if err != nil {
			continue
		}
		m.Total++
		m.Players += info.Players
		m.Goals += info.Score.Total()
		peers += info.Peers
		switch {
		case !info.Started:
			m.Waiting++
		case info.Phase == game.Ended.String():
			m.Ended++
		case info.Phase == game.GoalPause.String():
			m.Paused++
		default:
			m.Playing++
		}
		m.Sessions = append(m.Sessions, info)
	}
	return m, peers
}

// calculateWorkloadMetrics calculates current workload from sessions and peers
func (h *MetricsHandler) calculateWorkloadMetrics(sessions, peers int) WorkloadMetrics {
	workload := WorkloadMetrics{MaxSessions: h.maxSessions, MaxPeers: h.maxPeers}

	sessionLoad := float64(sessions) / float64(h.maxSessions) * 100
	peerLoad := float64(peers) / float64(h.maxPeers) * 100
	workload.LoadPercentage = sessionLoad
	if peerLoad > sessionLoad {
		workload.LoadPercentage = peerLoad
	}

	if workload.LoadPercentage < 40 {
		workload.CurrentLoad = "low"
	} else if workload.LoadPercentage < 70 {
		workload.CurrentLoad = "medium"
	} else if workload.LoadPercentage < 90 {
		workload.CurrentLoad = "high"
	} else {
		workload.CurrentLoad = "critical"
	}
	return workload
}

// determineHealth determines overall system health based on metrics
func determineHealth(workload WorkloadMetrics, ws WebSocketServerMetrics) (HealthStatus, string) {
	if ws.Status == WebSocketError {
		return HealthCritical, "WebSocket server error - unable to accept connections"
	}
	if ws.Status == WebSocketStopping {
		return HealthMaintenance, "Server is performing graceful shutdown - no new connections accepted"
	}
	switch workload.CurrentLoad {
	case "critical":
		return HealthDown, "System workload at critical levels (>90%) - service may become unavailable"
	case "high":
		return HealthWarning, "System workload is high (70-90%) - monitor performance closely"
	}
	return HealthHealthy, "All systems operational"
}
