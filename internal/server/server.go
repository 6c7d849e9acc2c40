// Package server exposes argwheel views over HTTP.
//
// A view is a session: the dataset name, its zoom stack and the frame
// size. Each request restores the session into a [viewer.Viewer], applies
// the interaction, stores the new state, and answers with the layout as
// draw instructions.
package server

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/argwheel/pkg/config"
	"github.com/matzehuels/argwheel/pkg/errors"
	"github.com/matzehuels/argwheel/pkg/manifest"
	"github.com/matzehuels/argwheel/pkg/pipeline"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/color"
	"github.com/matzehuels/argwheel/pkg/session"
)

const shutdownTimeout = 10 * time.Second

// Options configures a [Server].
type Options struct {
	Runner   *pipeline.Runner
	Sessions session.Store
	Config   config.Config
	Logger   *log.Logger
}

// Server is the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	sessions session.Store
	cfg      config.Config
	palette  color.Palette
	logger   *log.Logger

	mu       sync.Mutex
	datasets map[string]datasetEntry
}

type datasetEntry struct {
	modTime time.Time
	size    int64
	loaded  *pipeline.Loaded
}

// New creates a server. A nil runner gets an uncached one, nil sessions an
// in-memory store.
func New(opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	palette, err := cfg.ColorPalette()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	runner := opts.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger, cfg)
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}
	return &Server{
		runner:   runner,
		sessions: sessions,
		cfg:      cfg,
		palette:  palette,
		logger:   logger,
		datasets: make(map[string]datasetEntry),
	}, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/datasets", s.handleDatasets)

		r.Post("/views", s.handleCreateView)
		r.Route("/views/{view}", func(r chi.Router) {
			r.Get("/", s.handleGetView)
			r.Delete("/", s.handleDeleteView)
			r.Get("/svg", s.handleViewSVG)
			r.Get("/nodes/{node}", s.handleNode)
			r.Post("/click", s.handleClick)
			r.Post("/zoom-out", s.handleZoomOut)
			r.Post("/level/{index}", s.handleLevel)
			r.Put("/size", s.handleResize)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully. A background loop purges expired sessions.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.cleanupLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "datasets", s.cfg.Server.Datasets)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.sessions.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
			}
		}
	}
}

// dataset loads the named dataset, reusing the previous load while the
// file is unchanged.
func (s *Server) dataset(ctx context.Context, name string) (*pipeline.Loaded, error) {
	path, err := manifest.Resolve(s.cfg.Server.Datasets, name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeDatasetNotFound, "dataset %s not found", name)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "stat dataset %s", name)
	}

	s.mu.Lock()
	e, ok := s.datasets[name]
	s.mu.Unlock()
	if ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		return e.loaded, nil
	}

	loaded, err := s.runner.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.datasets[name] = datasetEntry{modTime: info.ModTime(), size: info.Size(), loaded: loaded}
	s.mu.Unlock()
	return loaded, nil
}
