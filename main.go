package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"footballers-server/api"
	"footballers-server/config"
	"footballers-server/peer"
	"footballers-server/protocol"
	"footballers-server/server"
	"footballers-server/terminal"
)

var (
	addr       string
	grpcAddr   string
	codecName  string
	goalTarget int
	serverURL  string
	sessionID  string
	logPath    string
)

var rootCmd = &cobra.Command{
	Use:   "footballers",
	Short: "Two-team physics football over websockets",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a headless host serving sessions over HTTP and websockets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runHost(ctx, cfg, server.SessionConfig{})
	},
}

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Run a host and play its first session from this terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		screen, err := openScreen()
		if err != nil {
			return err
		}
		defer screen.Fini()

		keyboard := terminal.NewKeyboard()
		go keyboard.Listen(screen)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			select {
			case <-keyboard.Quit():
				cancel()
			case <-ctx.Done():
			}
		}()

		return runHost(ctx, cfg, server.SessionConfig{
			HostInput: keyboard,
			Renderer:  terminal.NewRenderer(screen),
		})
	},
}

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join a running session as a client peer",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		if sessionID == "" {
			return errors.New("--session is required")
		}
		codec, err := protocol.NewCodec(cfg.Codec)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		screen, err := openScreen()
		if err != nil {
			return err
		}
		defer screen.Fini()
		keyboard := terminal.NewKeyboard()
		go keyboard.Listen(screen)
		go func() {
			select {
			case <-keyboard.Quit():
				cancel()
			case <-ctx.Done():
			}
		}()

		client, err := peer.Dial(ctx, peer.Config{
			ServerURL:    serverURL,
			SessionID:    sessionID,
			Codec:        codec,
			TickInterval: cfg.TickInterval,
			Input:        keyboard,
			Renderer:     terminal.NewRenderer(screen),
		})
		if err != nil {
			return err
		}
		if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// loadConfig reads the environment and applies the flags the user set.
func loadConfig(cmd *cobra.Command) config.ServerConfig {
	cfg := config.LoadServerConfig()
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = addr
	}
	if flags.Changed("grpc-addr") {
		cfg.GRPCAddr = grpcAddr
	}
	if flags.Changed("codec") {
		cfg.Codec = codecName
	}
	if flags.Changed("goals") && goalTarget > 0 {
		cfg.GoalTarget = goalTarget
	}
	return cfg
}

// openScreen takes over the terminal. Logs go to --log so they do not draw
// over the pitch.
func openScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			screen.Fini()
			return nil, err
		}
		log.SetOutput(f)
	}
	return screen, nil
}

// runHost serves the websocket and admin API until ctx is done. The first
// session uses local, the rest use the headless defaults.
func runHost(ctx context.Context, cfg config.ServerConfig, local server.SessionConfig) error {
	codec, err := protocol.NewCodec(cfg.Codec)
	if err != nil {
		return err
	}
	defaults := server.SessionConfig{
		TickInterval: cfg.TickInterval,
		GoalTarget:   cfg.GoalTarget,
		ResetTicks:   cfg.ResetTicks,
		Codec:        codec,
	}
	sm := server.NewSessionManager(defaults)
	defer sm.CloseAll()

	first := defaults
	first.HostInput = local.HostInput
	first.Renderer = local.Renderer
	session := sm.CreateWith(first)
	log.Printf("Session %s: ready, join with --session %s", session.ID, session.ID)

	metrics := api.NewMetricsHandler(sm)
	gs := server.NewGameServer(sm, cfg)

	r := chi.NewRouter()
	r.Mount("/api", api.NewAPIRouter(cfg, sm, metrics))
	gs.Routes(r)
	if cfg.StaticDir != "" {
		static, err := server.StaticFileServer(cfg.StaticDir, "/index.html")
		if err != nil {
			return err
		}
		r.Handle("/*", static)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	var health *api.HealthServer
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return err
		}
		health = api.NewHealthServer()
		go func() {
			if err := health.Serve(lis); err != nil {
				log.Printf("[ERROR] gRPC health server: %v", err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Server started on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if health != nil {
			health.Stop()
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	metrics.SetStatus(api.WebSocketStopping)
	if health != nil {
		health.SetServing(false)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] HTTP shutdown: %v", err)
	}
	if health != nil {
		health.Stop()
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&codecName, "codec", config.CodecJSON, "Wire codec: json or msgpack.")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "File to write logs to while the terminal view is open.")

	for _, cmd := range []*cobra.Command{serveCmd, hostCmd} {
		cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP and websocket listen address.")
		cmd.Flags().StringVar(&grpcAddr, "grpc-addr", ":8081", "gRPC health listen address, empty disables it.")
		cmd.Flags().IntVar(&goalTarget, "goals", config.MAX_GOALS, "Goals needed to end a match.")
	}
	joinCmd.Flags().StringVar(&serverURL, "server", "ws://localhost:8080", "Websocket URL of the host.")
	joinCmd.Flags().StringVar(&sessionID, "session", "", "Id of the session to join.")

	rootCmd.AddCommand(serveCmd, hostCmd, joinCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
