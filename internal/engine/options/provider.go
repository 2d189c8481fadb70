package options

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/jopts/internal/core/domain"
	"go.trai.ch/jopts/internal/core/ports"
	"go.trai.ch/jopts/internal/engine/compilerargs"
)

// ExtractFunc turns build script text into compiler arguments.
type ExtractFunc func(text string) []string

// Provider serves the compiler arguments of a single project.
//
// Arguments are computed on first use and cached until Invalidate is called,
// either directly or by the ChangeSource the provider was registered with.
// A failure to read the build script is logged and cached as an empty result.
type Provider struct {
	project domain.Project
	source  ports.BuildScriptSource
	extract ExtractFunc
	logger  ports.Logger
	tracer  ports.Tracer

	cell        Cell[[]string]
	subscribers Broadcaster

	cancelOnce sync.Once
	cancel     func()
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger used to report unreadable build scripts.
func WithLogger(l ports.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTracer sets the tracer used to record computations.
func WithTracer(t ports.Tracer) Option {
	return func(p *Provider) {
		if t != nil {
			p.tracer = t
		}
	}
}

// WithExtractor replaces compilerargs.Extract.
func WithExtractor(fn ExtractFunc) Option {
	return func(p *Provider) {
		if fn != nil {
			p.extract = fn
		}
	}
}

// NewProvider creates a Provider for project. When changes is non-nil the
// provider registers itself so that every change invalidates it.
func NewProvider(
	project domain.Project,
	source ports.BuildScriptSource,
	changes ports.ChangeSource,
	opts ...Option,
) (*Provider, error) {
	if project.IsZero() {
		return nil, domain.ErrInvalidProject
	}
	if source == nil {
		return nil, domain.ErrNilDependency
	}

	p := &Provider{
		project: project,
		source:  source,
		extract: compilerargs.Extract,
		logger:  nopLogger{},
		tracer:  nopTracer{},
	}
	for _, opt := range opts {
		opt(p)
	}

	if changes != nil {
		p.cancel = changes.Register(project, p.Invalidate)
	}

	return p, nil
}

// Project returns the project this provider serves.
func (p *Provider) Project() domain.Project {
	return p.project
}

// Arguments returns the project's compiler arguments, computing them if the cache is empty.
// The returned slice is a copy owned by the caller. Cancelling ctx does not interrupt a computation.
func (p *Provider) Arguments(ctx context.Context) []string {
	args := p.cell.Get(func() []string {
		return p.compute(context.WithoutCancel(ctx))
	})
	return slices.Clone(args)
}

// Cached reports whether a value is currently memoized.
func (p *Provider) Cached() bool {
	_, ok := p.cell.Peek()
	return ok
}

// Subscribe registers fn to be called after every invalidation.
func (p *Provider) Subscribe(fn func()) Subscription {
	return p.subscribers.Subscribe(fn)
}

// Unsubscribe removes a callback registered with Subscribe.
func (p *Provider) Unsubscribe(id Subscription) {
	p.subscribers.Unsubscribe(id)
}

// Invalidate clears the cache and notifies every subscriber, whether or not a value was cached.
func (p *Provider) Invalidate() {
	p.cell.Invalidate()
	p.subscribers.Fire()
}

// Close stops change notifications from the ChangeSource. The provider stays usable.
func (p *Provider) Close() {
	p.cancelOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
	})
}

func (p *Provider) compute(ctx context.Context) []string {
	_, span := p.tracer.Start(ctx, "options.compute",
		ports.WithAttribute("project.root", p.project.Root),
	)
	defer span.End()

	text, err := p.source.ReadBuildScript(p.project)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			span.RecordError(err)
			p.logger.Warn(fmt.Sprintf("ignoring unreadable build script %s: %v", p.project.BuildScriptPath(), err))
		}
		span.SetAttribute("args.count", 0)
		return nil
	}

	args := p.extract(text)
	span.SetAttribute("script.digest", fmt.Sprintf("%016x", xxhash.Sum64String(text)))
	span.SetAttribute("args.count", len(args))
	return args
}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type nopTracer struct{}

func (nopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End()                     {}
func (nopSpan) RecordError(error)        {}
func (nopSpan) SetAttribute(string, any) {}
