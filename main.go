// Command twenty48 starts the sliding-tile game server.
//
// It supports three modes:
//  1. "serve" (default) - runs the HTTP server exposing the REST API, the WebSocket feed and an /mcp HTTP endpoint
//  2. "mcp"             - runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play"            - plays a game interactively in the terminal
//
// Configuration comes from the environment (TWENTY48_*, NGROK_*, optionally a
// .env file); flags override it for host/port, debug logging and optional
// ngrok tunneling.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/slidetile/twenty48/api"
	"github.com/slidetile/twenty48/config"
	"github.com/slidetile/twenty48/game/service"
	"github.com/slidetile/twenty48/game/session"
	"github.com/slidetile/twenty48/play"
	"github.com/slidetile/twenty48/transport/mcp"
	"github.com/slidetile/twenty48/transport/websocket"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Twenty48 Game Server"
)

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newRootCommand builds the CLI. Running without a subcommand serves HTTP.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "twenty48",
		Usage:   "2048 game server with REST, WebSocket and MCP surfaces",
		Version: Version,
		Flags:   serverFlags(),
		Action:  runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server (REST API, WebSocket feed, /mcp endpoint)",
				Flags:  serverFlags(),
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "Run an MCP stdio server, reusing a running HTTP server when one is up",
				Flags:  serverFlags(),
				Action: runStdioMCP,
			},
			{
				Name:  "play",
				Usage: "Play a game interactively in the terminal",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "seed", Usage: "Deterministic game seed (0 draws a random one)"},
				},
				Action: runPlay,
			},
		},
	}
}

// serverFlags returns a fresh flag set for the commands that run a server.
func serverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host"},
		&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port"},
		&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
		&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel"},
		&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token (or use NGROK_AUTHTOKEN env var)"},
		&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)"},
	}
}

// loadConfig reads the environment configuration and applies any flags that
// were set explicitly on the command line.
func loadConfig(cmd *cli.Command) (*config.ServerConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}
	if cmd.IsSet("ngrok") {
		cfg.NgrokEnabled = cmd.Bool("ngrok")
	}
	if cmd.IsSet("ngrok-auth") {
		cfg.NgrokAuthToken = cmd.String("ngrok-auth")
	}
	if cmd.IsSet("ngrok-domain") {
		cfg.NgrokDomain = cmd.String("ngrok-domain")
	}

	return cfg, nil
}

// setupLogging configures the stdlib logger.
func setupLogging(debug bool) {
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// initializeServices wires the session manager and the game service, and
// starts the background cleanup routine when an interval is configured.
func initializeServices(cfg *config.ServerConfig) service.GameService {
	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager)

	if cfg.CleanupInterval > 0 {
		go sessionCleanupRoutine(sessionManager, cfg.CleanupInterval, cfg.SessionTTL)
	}

	return gameService
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within the retention window.
func sessionCleanupRoutine(manager *session.Manager, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(ttl)
		if removed > 0 {
			log.Printf("Cleaned up %d expired sessions", removed)
		}
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cfg.Debug)

	log.Printf("Starting %s v%s", AppName, Version)
	return runHTTPServer(ctx, cfg, initializeServices(cfg))
}

// runHTTPServer starts the HTTP server with the REST API, the WebSocket hub
// and an /mcp proxy endpoint. If ngrok is enabled it also provisions a public
// tunnel so a game can be shared or driven remotely.
func runHTTPServer(ctx context.Context, cfg *config.ServerConfig, gameService service.GameService) error {
	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(gameService, hub)

	addr := cfg.Addr()
	mcpClient := mcp.NewClient(cfg.BaseURL())

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if cfg.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(serveCtx, cfg, mainRouter)
		}()
	}

	select {
	case sig := <-stop:
		log.Printf("Received signal: %v. Shutting down...", sig)
	case <-ctx.Done():
		log.Println("Context canceled. Shutting down...")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return nil
}

// runNgrokTunnel serves the router through a public ngrok endpoint until the
// context is canceled.
func runNgrokTunnel(ctx context.Context, cfg *config.ServerConfig, handler http.Handler) {
	if cfg.NgrokAuthToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if cfg.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(cfg.NgrokDomain))
		log.Printf("Using custom ngrok domain: %s", cfg.NgrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(cfg.NgrokAuthToken),
	)
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runStdioMCP runs an MCP stdio server. It tries to reuse an external API at
// the configured address; if unavailable, it starts a minimal internal HTTP
// API bound to a random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cfg.Debug)

	gameService := initializeServices(cfg)

	externalURL := cfg.BaseURL()
	log.Printf("Checking for external API server at %s...", externalURL)

	var baseURL string
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode == http.StatusOK {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("get available port: %w", err)
		}

		internalAddr := fmt.Sprintf("127.0.0.1:%d", listener.Addr().(*net.TCPAddr).Port)
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		internalServer := &http.Server{
			Handler: api.NewServer(gameService, hub),
		}
		go func() {
			if err := internalServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Give the listener a moment before the first tool call hits it
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	if baseURL == externalURL {
		log.Println("MCP stdio server ready (using external HTTP server)")
	} else {
		log.Println("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("mcp stdio server: %w", err)
	}
	return nil
}

// runPlay starts the interactive terminal client against an in-process
// service; no HTTP server is involved.
func runPlay(ctx context.Context, cmd *cli.Command) error {
	gameService := service.NewGameService(session.NewManager())
	client := play.NewClient(gameService, os.Stdout)
	return client.Run(ctx, os.Stdin, int64(cmd.Int("seed")))
}
