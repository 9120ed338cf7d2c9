package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Wire codec names accepted by WIRE_CODEC and the codec query parameter.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// ServerConfig holds the runtime settings of a host server loaded from the
// environment. Geometry and tuning stay compile-time constants.
type ServerConfig struct {
	Addr           string        // HTTP/websocket listen address
	GRPCAddr       string        // gRPC health listen address, empty disables it
	TickInterval   time.Duration // Host frame interval
	GoalTarget     int           // Goals needed to end a match
	ResetTicks     int           // Length of the goal pause in ticks
	Codec          string        // Wire codec used for every session
	AllowedOrigins []string      // CORS and websocket origins, "*" allows all
	SendBuffer     int           // Per-peer outgoing message buffer
	StaticDir      string        // Optional browser client served at /
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// DefaultServerConfig returns the settings used when no environment is set.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           ":8080",
		GRPCAddr:       ":8081",
		TickInterval:   TICK_INTERVAL,
		GoalTarget:     MAX_GOALS,
		ResetTicks:     RESET_TIME,
		Codec:          CodecJSON,
		AllowedOrigins: []string{"*"},
		SendBuffer:     256,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
	}
}

// LoadServerConfig loads a .env file if present and reads the server settings
// from environment variables, falling back to DefaultServerConfig.
func LoadServerConfig() ServerConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] Could not load .env file: %v", err)
	}

	def := DefaultServerConfig()
	cfg := ServerConfig{
		Addr:           getEnv("SERVER_ADDR", def.Addr),
		GRPCAddr:       getEnv("GRPC_ADDR", def.GRPCAddr),
		TickInterval:   parseDuration(getEnv("TICK_INTERVAL", ""), def.TickInterval),
		GoalTarget:     parseInt(getEnv("GOAL_TARGET", ""), def.GoalTarget),
		ResetTicks:     parseInt(getEnv("RESET_TICKS", ""), def.ResetTicks),
		Codec:          strings.ToLower(getEnv("WIRE_CODEC", def.Codec)),
		AllowedOrigins: parseList(getEnv("ALLOWED_ORIGINS", ""), def.AllowedOrigins),
		SendBuffer:     parseInt(getEnv("SEND_BUFFER", ""), def.SendBuffer),
		StaticDir:      getEnv("STATIC_DIR", def.StaticDir),
		ReadTimeout:    parseDuration(getEnv("API_READ_TIMEOUT", ""), def.ReadTimeout),
		WriteTimeout:   parseDuration(getEnv("API_WRITE_TIMEOUT", ""), def.WriteTimeout),
	}
	if cfg.Codec != CodecJSON && cfg.Codec != CodecMsgpack {
		log.Printf("[WARN] Unknown WIRE_CODEC %q, using %s", cfg.Codec, CodecJSON)
		cfg.Codec = CodecJSON
	}
	if cfg.GoalTarget <= 0 {
		cfg.GoalTarget = def.GoalTarget
	}
	if cfg.ResetTicks <= 0 {
		cfg.ResetTicks = def.ResetTicks
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseList(s string, def []string) []string {
	if s == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
