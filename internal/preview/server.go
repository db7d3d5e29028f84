package preview

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/logfields"
	"git.home.luguber.info/inful/symdoc/internal/metrics"
)

// BuildFunc regenerates the site.
type BuildFunc func(ctx context.Context) error

// Options configures a preview Server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// WatchPaths are files whose changes trigger a rebuild; empty disables
	// watching.
	WatchPaths []string
	// Debounce delays a rebuild until changes have settled.
	Debounce time.Duration
	// Registry is exposed on /metrics when set.
	Registry *prom.Registry
}

// DefaultDebounce is the settle time between a change and its rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Server serves the output directory and rebuilds it on change.
type Server struct {
	dir    string
	build  BuildFunc
	opts   Options
	status buildStatus
	router chi.Router
	errs   *errors.HTTPErrorAdapter
}

// New returns a Server for the site in dir.
func New(dir string, build BuildFunc, opts Options) *Server {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	s := &Server{dir: dir, build: build, opts: opts, errs: errors.NewHTTPErrorAdapter(nil)}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(noCache)

	r.Get("/healthz", s.handleHealth)
	if s.opts.Registry != nil {
		r.Handle("/metrics", metrics.HTTPHandler(s.opts.Registry))
	}
	r.With(s.requireGoodBuild).Handle("/*", http.FileServer(http.Dir(s.dir)))
	s.router = r
}

// requireGoodBuild answers with the build error until a build has succeeded.
func (s *Server) requireGoodBuild(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.status.mu.RLock()
		lastErr, good := s.status.lastError, s.status.hasGoodBuild
		s.status.mu.RUnlock()
		if !good && lastErr != nil {
			s.errs.WriteErrorResponse(w, r, lastErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h := s.status.snapshot()
	w.Header().Set("Content-Type", "application/json")
	if h.Status == "error" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(h)
}

// Rebuild runs the build function and records its outcome.
func (s *Server) Rebuild(ctx context.Context) error {
	err := s.build(ctx)
	s.status.record(err)
	if err != nil {
		slog.Warn("Preview build failed", logfields.Error(err))
	}
	return err
}

// Run performs the initial build, serves until ctx is done and, when watch
// paths are configured, rebuilds on change. A failed initial build keeps the
// server up so the error shows on /healthz.
func (s *Server) Run(ctx context.Context) error {
	_ = s.Rebuild(ctx)

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, "listen").WithContext("addr", s.opts.Addr).Build()
	}
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()
	slog.Info("Preview server listening", logfields.URL("http://"+ln.Addr().String()), logfields.Path(s.dir))

	watchErr := make(chan error, 1)
	if len(s.opts.WatchPaths) > 0 {
		go func() { watchErr <- s.watch(ctx) }()
	}

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return errors.WrapError(err, errors.CategoryNetwork, "serve").Build()
		}
		return nil
	case err := <-watchErr:
		if err != nil {
			_ = srv.Close()
			return err
		}
	}

	slog.Info("Shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}
