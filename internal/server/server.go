package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/selectbox/internal/logging"
	"github.com/muurk/selectbox/internal/selectbox"
)

// DefaultAddr is the listen address used when Config.Addr is empty.
const DefaultAddr = ":8089"

// Config holds the server configuration
type Config struct {
	Addr      string
	DataPath  string               // YAML option list served to clients
	TermQuery string               // query parameter carrying the search term (default "q")
	Mode      selectbox.SearchMode // matching mode (default pattern)
	Limit     int                  // maximum results per reply, 0 = unlimited
	Latency   time.Duration        // artificial delay before each reply
	CertPath  string               // Serve TLS when both CertPath and KeyPath are set
	KeyPath   string
	LogLevel  string
}

// Server is the demo option source: an HTTP endpoint and a WebSocket
// endpoint answering searches over one option list.
type Server struct {
	config      *Config
	source      *Source
	engine      *gin.Engine
	httpServer  *http.Server
	tlsConfig   *tls.Config
	upgrader    websocket.Upgrader
	wg          sync.WaitGroup
	mu          sync.Mutex
	activeConns map[string]*websocket.Conn
}

// New creates a new Server instance
func New(config *Config) (*Server, error) {
	if config.LogLevel != "" {
		if err := logging.Initialize(config.LogLevel); err != nil {
			return nil, fmt.Errorf("failed to initialize logging: %w", err)
		}
	}
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.TermQuery == "" {
		config.TermQuery = "q"
	}
	if config.Mode == "" {
		config.Mode = selectbox.SearchPattern
	}

	source, err := LoadSource(config.DataPath)
	if err != nil {
		return nil, err
	}

	var tlsConfig *tls.Config
	if config.CertPath != "" && config.KeyPath != "" {
		tlsConfig, err = NewTLSConfig(config.CertPath, config.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	s := &Server{
		config:      config,
		source:      source,
		tlsConfig:   tlsConfig,
		activeConns: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The demo source is meant to be called from any local page.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	if s.tlsConfig != nil {
		listener = tls.NewListener(listener, s.tlsConfig)
	}

	logging.Info("Starting option source",
		zap.String("addr", listener.Addr().String()),
		zap.String("data", s.config.DataPath),
		zap.Int("options", s.source.Len()),
		zap.Any("tls_info", GetTLSInfo(s.tlsConfig)),
	)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(listener)
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	case err := <-errChan:
		return err
	}
}

// Serve accepts connections on listener until Shutdown is called.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			logging.Error("Error stopping HTTP server", zap.Error(err))
		}
	}

	// Hijacked WebSocket connections are not closed by http.Server
	s.mu.Lock()
	for addr, conn := range s.activeConns {
		logging.Info("Closing active connection", zap.String("remote_addr", addr))
		_ = conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()
	return nil
}

// GetActiveConnections returns the number of open WebSocket connections
func (s *Server) GetActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}

func (s *Server) track(addr string, conn *websocket.Conn) {
	s.mu.Lock()
	s.activeConns[addr] = conn
	s.mu.Unlock()
}

func (s *Server) untrack(addr string) {
	s.mu.Lock()
	delete(s.activeConns, addr)
	s.mu.Unlock()
}
