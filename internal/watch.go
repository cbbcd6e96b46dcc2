package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/blogview/internal/blog"
	"github.com/starford/blogview/internal/contentindex"
	"github.com/starford/blogview/internal/storage"
	"github.com/starford/blogview/internal/view"
)

// Files written by Watch.
const (
	ListFile = "blog-list.html"
	TagsFile = "blog-tags.html"
)

// ErrRemoteIndex is returned by Watch when the index is not a local file.
var ErrRemoteIndex = errors.New("watch needs a local index path")

// Watch renders the listing and tag cloud into outDir, then renders them
// again after every change of the local index until ctx is cancelled or a
// signal arrives.
func Watch(ctx context.Context, outDir string, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	src, ok := app.source.(*contentindex.FileSource)
	if !ok {
		return ErrRemoteIndex
	}
	dir, err := storage.NewDir(outDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	render := func() {
		if err := app.renderViews(ctx, dir); err != nil {
			app.logger.Error("watch: render failed", slog.String("error", err.Error()))
		}
	}
	render()
	return contentindex.Watch(ctx, src.Path(), app.logger, render)
}

// renderViews builds both blocks concurrently, each as its own view
// instance with its own fetch, and writes the files that changed.
func (a *application) renderViews(ctx context.Context, dir *storage.Dir) error {
	cfg := a.config
	svc := a.service()

	var listHTML, tagsHTML bytes.Buffer
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v := svc.NewListView(gCtx, blog.ListOptions{
			Limit:      cfg.List.Limit,
			Category:   cfg.List.Category,
			Tag:        cfg.List.Tag,
			Pagination: cfg.List.Pagination,
		})
		page, err := v.LoadMore()
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}
		return view.PostGrid(page, cfg.Site.DefaultImage).Render(gCtx, &listHTML)
	})

	g.Go(func() error {
		v := svc.NewTagView(gCtx, blog.TagOptions{Max: cfg.Tags.Max, Step: cfg.Tags.Step})
		page, err := v.Initial()
		if err != nil {
			return fmt.Errorf("tags: %w", err)
		}
		return view.TagCloud(a.tagCloud(v, page, false)).Render(gCtx, &tagsHTML)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	for _, out := range []struct {
		name string
		data []byte
	}{
		{ListFile, listHTML.Bytes()},
		{TagsFile, tagsHTML.Bytes()},
	} {
		changed, err := dir.Write(out.name, out.data)
		if err != nil {
			return err
		}
		a.logger.Info("watch: rendered",
			slog.String("file", out.name),
			slog.Bool("changed", changed))
	}
	return nil
}
