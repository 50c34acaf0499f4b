package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/dashforge/pkg/pipeline"
	"github.com/matzehuels/dashforge/pkg/registry"
)

const (
	// MaxBodySize caps a request body.
	MaxBodySize = 4 << 20

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Config holds the dependencies of a [Server].
type Config struct {
	Addr     string
	Registry *registry.Registry
	Runner   *pipeline.Runner
	Logger   *log.Logger

	// Render holds defaults applied to every render (theme, scale, page width).
	Render pipeline.Options

	// Now is the clock stamped into transfer messages. Nil uses time.Now.
	Now func() time.Time
}

// Server is the dashboard HTTP API.
type Server struct {
	addr   string
	reg    *registry.Registry
	runner *pipeline.Runner
	logger *log.Logger
	render pipeline.Options
	now    func() time.Time
}

// New creates a Server. A nil registry uses [registry.Default]; a nil runner
// renders without caching.
func New(cfg Config) *Server {
	s := &Server{
		addr:   cfg.Addr,
		reg:    cfg.Registry,
		runner: cfg.Runner,
		logger: cfg.Logger,
		render: cfg.Render,
		now:    cfg.Now,
	}
	if s.reg == nil {
		s.reg = registry.Default()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(s.reg, nil, nil, s.logger)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		s.instrument,
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/registry", func(r chi.Router) {
			r.Get("/", s.handleRegistry)
			r.Get("/{type}", s.handleDefinition)
		})
		r.Route("/presets", func(r chi.Router) {
			r.Get("/", s.handlePresets)
			r.Get("/{name}", s.handlePreset)
		})

		r.Group(func(r chi.Router) {
			r.Use(limitBody)
			r.Post("/preview", s.handlePreview)
			r.Post("/codegen", s.handleCodegen)
			r.Post("/export", s.handleExport)
			r.Post("/transfer", s.handleTransfer)
			r.Post("/import", s.handleImport)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, s.logger, notFound(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONStatus(w, http.StatusMethodNotAllowed, errorBody("METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path))
	})
	return r
}

// Serve listens on the configured address and blocks until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is [Server.Serve] on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.logger.Info("serving dashboard API", "addr", "http://"+ln.Addr().String())

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down API server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
