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
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/muliwe/go-fizzbuzz-classifier/internal/classifier"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/logger"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/metrics"
)

// Config holds server configuration
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	EnableDebug     bool
	EnableMetrics   bool
	LogLevel        string // Console log level (debug, info, warn, error)
	LoggerConfig    logger.Config
	ClassifierCfg   classifier.Config

	// TLS configuration
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		EnableDebug:     true,
		EnableMetrics:   true,
		LogLevel:        "info",
		LoggerConfig:    logger.DefaultConfig(),
		ClassifierCfg:   classifier.DefaultConfig(),
		TLSEnabled:      false,
	}
}

// Server represents the HTTP server
type Server struct {
	cfg        Config
	httpServer *http.Server
	handler    *Handler
	logger     *logger.Logger
	console    *logrus.Logger
	metrics    *metrics.Metrics
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	console := logger.NewConsole(cfg.LogLevel, os.Stderr)

	// Initialize result log
	l, err := logger.New(cfg.LoggerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize components
	clf := classifier.New(cfg.ClassifierCfg)
	m := metrics.New()
	handler := NewHandler(clf, l, m, console)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler.Routes(cfg.EnableDebug, cfg.EnableMetrics),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.TLSEnabled {
		httpServer.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			NextProtos: []string{"h2", "http/1.1"}, // Enable HTTP/2
		}
	}

	return &Server{
		cfg:        cfg,
		httpServer: httpServer,
		handler:    handler,
		logger:     l,
		console:    console,
		metrics:    m,
	}, nil
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Run(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to create TCP listener: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	protocol := "HTTP"
	if s.cfg.TLSEnabled {
		protocol = "HTTPS"
	}
	s.console.WithFields(logrus.Fields{
		"addr":     ln.Addr().String(),
		"protocol": protocol,
	}).Info("FizzBuzz classifier starting")
	s.console.Info("Endpoints: / (classify ?n=), /classify/{n}, /range, /health")
	if s.cfg.EnableDebug {
		s.console.Info("Debug endpoint enabled: /debug")
	}
	if s.cfg.EnableMetrics {
		s.console.Info("Metrics endpoint enabled: /metrics")
	}
	s.console.WithField("path", s.logger.LogPath()).Info("Result log")

	errCh := make(chan error, 1)
	go func() {
		var err error
		if s.cfg.TLSEnabled {
			s.console.WithField("cert", s.cfg.TLSCertFile).Info("TLS enabled")
			err = s.httpServer.ServeTLS(ln, s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
		} else {
			err = s.httpServer.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = s.logger.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.console.Info("Server shutting down...")
	if err := s.Close(); err != nil {
		return err
	}
	s.console.Info("Server stopped")
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.logger.Close(); err != nil {
		s.console.WithError(err).Error("Error closing logger")
	}
	return nil
}
