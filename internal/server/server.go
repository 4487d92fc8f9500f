// Package server exposes the catalog as a network-facing query index over
// HTTP and WebSocket. Handlers only ever read the immutable catalog, so no
// locking is needed around it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/soyeahso/agentdex/internal/catalog"
	"github.com/soyeahso/agentdex/internal/config"
	"github.com/soyeahso/agentdex/internal/logging"
	"github.com/soyeahso/agentdex/internal/version"
)

// Server is the agentdex catalog query server.
type Server struct {
	cfg      config.Config
	cat      *catalog.Catalog
	auth     ResolvedAuth
	log      *logging.Logger
	handlers map[string]RequestHandler
	version  string

	conns      atomic.Int64
	startedAt  time.Time
	httpServer *http.Server
	upgrader   websocket.Upgrader
}

// New creates a catalog query server over the given loaded catalog.
func New(cfg config.Config, cat *catalog.Catalog, log *logging.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		cat:      cat,
		auth:     ResolveAuth(cfg.Server.Auth),
		log:      log.Sub("server"),
		handlers: make(map[string]RequestHandler),
		version:  version.Version,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkWebSocketOrigin(cfg.Server.AllowedOrigins),
		},
	}

	s.registerRPCHandlers()
	return s
}

// checkWebSocketOrigin returns a function that validates WebSocket Origin
// headers. Requests without an Origin header (non-browser clients) are
// always allowed; browser origins must match the configured list.
func checkWebSocketOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// Handle registers an RPC method handler.
func (s *Server) Handle(method string, handler RequestHandler) {
	s.handlers[method] = handler
}

// Methods returns the list of registered RPC method names.
func (s *Server) Methods() []string {
	methods := make([]string, 0, len(s.handlers))
	for m := range s.handlers {
		methods = append(methods, m)
	}
	return methods
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.ServerConfig) string {
	switch cfg.Bind {
	case "lan", "auto":
		return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	case "custom":
		host := cfg.CustomBindHost
		if host == "" {
			host = "0.0.0.0"
		}
		return fmt.Sprintf("%s:%d", host, cfg.Port)
	default:
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
}

// Start begins listening for HTTP and WebSocket connections.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg.Server)

	mux := http.NewServeMux()
	s.registerHTTPRoutes(mux)

	handler := withMiddleware(mux, s.log, s.cfg.Server.AllowedOrigins)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(l net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.startedAt = time.Now()

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("bind", s.cfg.Server.Bind).
		Str("auth", s.auth.Mode).
		Int("records", s.cat.Len()).
		Str("catalogVersion", s.cat.Version()).
		Msg("catalog server ready")

	// Shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down catalog server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the server's listen address, or empty string if not started.
func (s *Server) Addr() string {
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}
