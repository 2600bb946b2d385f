// Package internal provides the preprocessor and check command runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/mdbook-hidebuild/internal/book"
	"github.com/starford/mdbook-hidebuild/internal/enrich"
	"github.com/starford/mdbook-hidebuild/internal/report"
	"github.com/starford/mdbook-hidebuild/internal/storage"
	"github.com/starford/mdbook-hidebuild/internal/summary"
	"github.com/starford/mdbook-hidebuild/internal/watch"
)

func newApplication(opts []Option) (*application, *slog.Logger, error) {
	app := &application{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}

	// stdout belongs to mdBook, so logs always go to stderr.
	logger := slog.New(slog.NewJSONHandler(app.stderr, &slog.HandlerOptions{
		Level: app.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return app, logger, nil
}

func (a *application) pipeline(store storage.Provider, logger *slog.Logger) *enrich.Pipeline {
	return enrich.NewPipeline(store, logger,
		enrich.WithExtension(a.config.Preprocessor.Extension),
		enrich.WithFallbackTitle(a.config.Preprocessor.FallbackTitle))
}

// Run reads the [context, book] pair from stdin, adds the index page and the
// hidden chapters, and writes the book to stdout. Nothing is written to stdout
// unless every step succeeds.
func Run(ctx context.Context, opts ...Option) error {
	app, logger, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	bookCtx, b, err := book.ReadInput(app.stdin)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Preprocessor started",
		slog.String("renderer", bookCtx.Renderer),
		slog.String("mdbook_version", bookCtx.MDBookVersion),
		slog.String("src", bookCtx.SrcDir()))

	store, err := storage.NewFS(bookCtx.SrcDir())
	if err != nil {
		return fmt.Errorf("open book source: %w", err)
	}

	hidden, err := app.pipeline(store, logger).Run(b, bookCtx.Title())
	if err != nil {
		return err
	}

	if cfg.Preprocessor.DebugSnapshot != "" {
		if err := writeSnapshot(bookCtx, b, cfg.Preprocessor.DebugSnapshot); err != nil {
			return err
		}
		logger.DebugContext(ctx, "Debug snapshot written", slog.String("path", cfg.Preprocessor.DebugSnapshot))
	}

	if err := book.WriteBook(app.stdout, b); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Preprocessor finished", slog.Int("hidden", len(hidden)))
	return nil
}

func writeSnapshot(bookCtx *book.Context, b *book.Book, path string) error {
	root := bookCtx.Root
	if root == "" {
		root = "."
	}
	store, err := storage.NewFS(root)
	if err != nil {
		return fmt.Errorf("debug snapshot: %w", err)
	}
	data, err := book.MarshalIndent(b)
	if err != nil {
		return fmt.Errorf("debug snapshot: %w", err)
	}
	if err := store.Write(path, data); err != nil {
		return fmt.Errorf("debug snapshot: %w", err)
	}
	return nil
}

// CheckRequest selects the source directory and summary for Check.
type CheckRequest struct {
	Src     string
	Summary string // relative to Src; defaults to SUMMARY.md
	Watch   bool
}

// Check reports documents under req.Src missing from the summary. With
// req.Watch set it keeps re-reporting on every change until ctx is cancelled
// or the process receives SIGINT/SIGTERM.
func Check(ctx context.Context, req CheckRequest, opts ...Option) error {
	app, logger, err := newApplication(opts)
	if err != nil {
		return err
	}
	if req.Summary == "" {
		req.Summary = summary.FileName
	}

	store, err := storage.NewFS(req.Src)
	if err != nil {
		return fmt.Errorf("open book source: %w", err)
	}
	checker := report.NewChecker(store, app.pipeline(store, logger), filepath.ToSlash(req.Summary),
		app.config.Preprocessor.FallbackTitle)

	runOnce := func() error {
		findings, err := checker.Check()
		if err != nil {
			return err
		}
		return report.Render(app.stdout, req.Summary, findings)
	}

	if err := runOnce(); err != nil {
		return err
	}
	if !req.Watch {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return watch.Watch(gCtx, store.Root(), app.config.Preprocessor.Extension, watch.DefaultDebounce, logger, func() {
			if err := runOnce(); err != nil {
				logger.Warn("check failed", slog.String("error", err.Error()))
			}
		})
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-gCtx.Done():
		}
		return nil
	})

	return g.Wait()
}
