// Package app implements the application layer for jopts.
package app

import (
	"context"
	"io"
	"sync"

	"go.trai.ch/jopts/internal/core/domain"
	"go.trai.ch/jopts/internal/core/ports"
	"go.trai.ch/jopts/internal/engine/options"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Registry resolves paths to cached option providers.
type Registry interface {
	Options(path string) (*options.Provider, error)
	Close()
}

// EmitFunc receives the current arguments of a project. Returning an error stops watching.
type EmitFunc func(project domain.Project, args []string) error

// App represents the main application logic.
type App struct {
	registry Registry
	changes  ports.ChangeSource
	logger   ports.Logger
}

// New creates a new App instance. changes may be nil.
func New(registry Registry, changes ports.ChangeSource, log ports.Logger) *App {
	return &App{
		registry: registry,
		changes:  changes,
		logger:   log,
	}
}

// Arguments returns the compiler arguments of the project enclosing path.
func (a *App) Arguments(ctx context.Context, path string) ([]string, error) {
	provider, err := a.registry.Options(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project")
	}
	return provider.Arguments(ctx), nil
}

// Watch emits the arguments of every project enclosing one of paths, then emits them again
// each time a project is invalidated. It returns when ctx is done or emit fails.
// Paths that resolve to the same project are watched once. Calls to emit are serialized.
func (a *App) Watch(ctx context.Context, paths []string, emit EmitFunc) error {
	providers, err := a.resolveAll(paths)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	serialized := func(project domain.Project, args []string) error {
		mu.Lock()
		defer mu.Unlock()
		return emit(project, args)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, provider := range providers {
		g.Go(func() error {
			return a.watchProvider(ctx, provider, serialized)
		})
	}
	return g.Wait()
}

// Close releases the providers and stops change notifications.
func (a *App) Close() error {
	a.registry.Close()
	if closer, ok := a.changes.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// SetLogJSON switches the logger to JSON output if it supports it.
func (a *App) SetLogJSON(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

func (a *App) resolveAll(paths []string) ([]*options.Provider, error) {
	seen := make(map[string]struct{}, len(paths))
	providers := make([]*options.Provider, 0, len(paths))

	for _, path := range paths {
		provider, err := a.registry.Options(path)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to resolve project")
		}
		root := provider.Project().Root
		if _, dup := seen[root]; dup {
			continue
		}
		seen[root] = struct{}{}
		providers = append(providers, provider)
	}
	return providers, nil
}

func (a *App) watchProvider(ctx context.Context, provider *options.Provider, emit EmitFunc) error {
	changed := make(chan struct{}, 1)
	id := provider.Subscribe(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer provider.Unsubscribe(id)

	project := provider.Project()
	a.logger.Info("watching " + project.BuildScriptPath())

	for {
		if err := emit(project, provider.Arguments(ctx)); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-changed:
		}
	}
}
