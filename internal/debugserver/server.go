// Package debugserver exposes read-only game state over HTTP for
// inspection while the game runs.
package debugserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/samdwyer/cavediver/internal/game"
	"github.com/samdwyer/cavediver/internal/world"
)

// listenTries bounds how often Start retries a busy address.
const listenTries = 5

// Source is the game state the server reads. Implementations must be safe
// to call from the server's goroutines.
type Source interface {
	Snapshot() *game.Snapshot
	Collision() *world.CollisionMap
	SearchBudget() int
}

// Server serves debug endpoints for one game.
type Server struct {
	addr string
	log  logr.Logger
	srv  *http.Server
}

// New creates a server for src listening on addr once started.
func New(addr string, src Source, logger logr.Logger) *Server {
	logger = logger.WithName("debugserver")
	return &Server{
		addr: addr,
		log:  logger,
		srv: &http.Server{
			Handler:           Routes(src, logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Routes configures all routes and returns the router.
func Routes(src Source, logger logr.Logger) http.Handler {
	h := &handler{src: src, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", h.health)
	r.Get("/snapshot", h.snapshot)
	r.Get("/tiles/{x}/{y}", h.tile)
	r.Get("/path", h.path)
	return r
}

// Start listens on the server address, retrying with exponential backoff
// while the address is busy, and serves in the background. It returns the
// bound address.
func (s *Server) Start(ctx context.Context) (net.Addr, error) {
	ln, err := backoff.Retry(ctx, func() (net.Listener, error) {
		ln, err := net.Listen("tcp", s.addr)
		if err != nil {
			s.log.V(1).Info("listen failed", "addr", s.addr, "err", err.Error())
		}
		return ln, err
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(listenTries))
	if err != nil {
		return nil, err
	}

	s.log.Info("serving", "addr", ln.Addr().String())
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error(err, "serve")
		}
	}()
	return ln.Addr(), nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx is
// done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// requestLogger logs each request at verbosity 1.
func requestLogger(logger logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.V(1).Info("request", "method", r.Method, "path", r.URL.Path,
				"status", ww.Status(), "duration", time.Since(start))
		})
	}
}
