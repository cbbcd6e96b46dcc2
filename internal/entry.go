// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/blogview/internal/api"
	"github.com/starford/blogview/internal/blog"
	"github.com/starford/blogview/internal/checksum"
	"github.com/starford/blogview/internal/contentindex"
	"github.com/starford/blogview/internal/mcpserver"
	"github.com/starford/blogview/internal/query"
	"github.com/starford/blogview/internal/sse"
)

// NewLogger returns the structured JSON logger used by every command.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewSource builds the content index source named by cfg.
func NewSource(cfg IndexConfig) contentindex.Source {
	if cfg.Path != "" {
		return contentindex.NewFileSource(cfg.Path)
	}
	return contentindex.NewHTTPSource(cfg.URL, contentindex.WithTimeout(cfg.Timeout))
}

func newApplication(opts ...Option) (*application, error) {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if app.logger == nil {
		// Logs go to stderr; stdout carries command output.
		app.logger = NewLogger(os.Stderr, app.config.App.LogLevel)
		slog.SetDefault(app.logger)
	}

	if app.source == nil {
		app.source = NewSource(app.config.Index)
	}

	return app, nil
}

// service wires the query engine and blog service from the config.
func (a *application) service() *blog.Service {
	cfg := a.config
	tagMatch, err := query.ParseTagMatch(cfg.List.TagMatch)
	if err != nil {
		a.logger.Warn("unknown tag match, using substring", slog.String("tag_match", cfg.List.TagMatch))
	}
	engine := query.New(
		query.WithTemplate(cfg.Site.Template),
		query.WithListingPath(cfg.Site.BasePath),
		query.WithTagMatch(tagMatch),
	)
	return blog.NewService(a.source, engine, cfg.Site.Template, a.logger)
}

func sourceName(src contentindex.Source) string {
	switch s := src.(type) {
	case *contentindex.FileSource:
		return s.Path()
	case *contentindex.HTTPSource:
		return s.URL()
	}
	return fmt.Sprintf("%T", src)
}

// handler builds the HTTP surface: health checks plus the API under /api.
func (a *application) handler(events http.Handler) http.Handler {
	cfg := a.config
	svc := a.service()

	apiRouter := api.NewRouter(svc, api.Defaults{
		Limit:    cfg.List.Limit,
		TagLimit: cfg.Tags.Max,
	}, cfg.Site.URL, events)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	// Ready means the content index can be fetched right now.
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := a.source.Fetch(r.Context()); err != nil {
			a.logger.Warn("readiness check failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"index unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	return r
}

// indexNotifier returns a watcher callback that publishes an index.updated
// event whenever the file content actually changed.
func indexNotifier(path string, broker *sse.Broker, logger *slog.Logger) contentindex.ChangeCallback {
	last, _ := checksum.File(path)
	return func() {
		sum, err := checksum.File(path)
		if err != nil {
			logger.Warn("watcher: checksum failed", slog.String("error", err.Error()))
			return
		}
		if sum == last {
			return
		}
		last = sum
		logger.Info("index updated", slog.String("path", path), slog.String("checksum", sum))
		broker.PublishIndexUpdate(path, sum)
	}
}

// Run serves the JSON API until ctx is cancelled or a signal arrives.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}

	cfg := app.config
	logger := app.logger

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("index", sourceName(app.source)),
		slog.String("tag_match", cfg.List.TagMatch),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Change events exist only for a local index.
	broker := sse.NewBroker()
	defer broker.Close()
	fileSrc, local := app.source.(*contentindex.FileSource)
	var events http.Handler
	if local {
		events = broker
	}

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           app.handler(events),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	g, gCtx := errgroup.WithContext(ctx)

	if local {
		g.Go(func() error {
			return contentindex.Watch(gCtx, fileSrc.Path(), logger, indexNotifier(fileSrc.Path(), broker, logger))
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")
		stop()

		// Open event streams would hold Shutdown until its timeout.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the MCP tools on stdin/stdout.
func RunMCP(_ context.Context, version string, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	app.logger.Info("mcp: serving on stdio", slog.String("index", sourceName(app.source)))
	srv := mcpserver.New(app.service(), version, app.config.List.Limit, app.config.Tags.Max)
	return srv.ServeStdio()
}
