package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// ShutdownHook runs after the HTTP server has stopped accepting requests.
type ShutdownHook func(ctx context.Context) error

// Server wraps http.Server with graceful shutdown capabilities.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	hooks           []ShutdownHook
}

// NewServer creates a new Server instance. WriteTimeout is left unset so the
// cart event stream can stay open; handlers are bounded by the timeout
// middleware instead.
func NewServer(handler http.Handler, port string, hooks ...ShutdownHook) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20, // 1MB
		},
		shutdownTimeout: 10 * time.Second,
		hooks:           hooks,
	}
}

// OnShutdown registers f to run as soon as Shutdown begins, while open
// connections are still draining. Use it to end long-lived streams.
func (s *Server) OnShutdown(f func()) {
	s.httpServer.RegisterOnShutdown(f)
}

// Run listens on the configured port and serves until SIGINT or SIGTERM,
// then shuts down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.serve(ctx, ln)
}

// serve blocks until ctx is done or the server fails.
func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	log.Info().Str("addr", ln.Addr().String()).Msg("Server listening")

	errCh := make(chan error, 1)
	go func() { errCh <- s.httpServer.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutdown requested, draining connections")
	}
	return s.Shutdown()
}

// Shutdown gracefully shuts down the server, then runs the shutdown hooks in
// order. Hook errors are logged and joined.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	var errs []error
	for _, hook := range s.hooks {
		if err := hook(ctx); err != nil {
			log.Error().Err(err).Msg("Shutdown hook failed")
			errs = append(errs, err)
		}
	}

	log.Info().Msg("Server stopped gracefully")
	return errors.Join(errs...)
}
