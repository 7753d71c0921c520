// Package debug serves the rendered reminder over local HTTP and re-renders
// when the template file changes, so the layout can be tweaked live.
package debug

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	applog "reminder/internal/log"
)

// Options configures one preview session.
type Options struct {
	// TemplatePath is the template file to watch. Empty means the embedded
	// template is in use and there is nothing to watch.
	TemplatePath string
	// OutputPath receives a copy of the rendered HTML for inspection.
	OutputPath string
	Port       int
	// Render produces the current HTML, re-reading the template each call.
	Render func() (string, error)
	Logger *applog.Logger
}

type preview struct {
	mu   sync.RWMutex
	html []byte
}

func (p *preview) set(html string) {
	p.mu.Lock()
	p.html = []byte(html)
	p.mu.Unlock()
}

func (p *preview) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(p.html)
}

// Run renders once, serves the result on the configured port and keeps
// re-rendering on template changes until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger.WithComponent(applog.ComponentDebug)
	if opts.OutputPath == "" {
		opts.OutputPath = "output.html"
	}

	html, err := opts.Render()
	if err != nil {
		return err
	}
	p := &preview{}
	p.set(html)
	writeOutput(logger, opts.OutputPath, html)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      p,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("debug server started",
		"url", fmt.Sprintf("http://localhost:%d/", opts.Port),
		applog.FieldTemplate, opts.TemplatePath,
		"output", opts.OutputPath)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("debug server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if opts.TemplatePath != "" {
		g.Go(func() error {
			return watch(ctx, logger, opts, p)
		})
	}

	err = g.Wait()
	logger.Info("debug server stopped")
	return err
}

// watch re-renders whenever the template file is written. Editors often
// replace the file instead of writing in place, so the watch is on the
// directory and events are filtered by name.
func watch(ctx context.Context, logger *applog.Logger, opts Options, p *preview) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(opts.TemplatePath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(opts.TemplatePath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Info("template changed, re-rendering", applog.FieldTemplate, target)
			html, err := opts.Render()
			if err != nil {
				// Keep serving the last good render while the template
				// is being edited.
				logger.Error("render failed", applog.FieldError, err)
				continue
			}
			p.set(html)
			writeOutput(logger, opts.OutputPath, html)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", applog.FieldError, err)
		}
	}
}

func writeOutput(logger *applog.Logger, path, html string) {
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		logger.Error("write output file", "path", path, applog.FieldError, err)
		return
	}
	logger.Info("rendered", "path", path, "bytes", len(html))
}
