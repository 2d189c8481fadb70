package options

import (
	"sync"
	"sync/atomic"

	"go.trai.ch/jopts/internal/core/domain"
	"go.trai.ch/jopts/internal/core/ports"
)

// Registry hands out one Provider per project root.
type Registry struct {
	source  ports.BuildScriptSource
	changes ports.ChangeSource
	opts    []Option

	providers sync.Map // project root -> *registryEntry
	closed    atomic.Bool
}

// registryEntry defers provider construction so that exactly one provider is
// built and registered per root, however many callers race on the first query.
type registryEntry struct {
	get   func() (*Provider, error)
	built atomic.Pointer[Provider]
}

// NewRegistry creates a Registry whose providers read from source and listen on changes.
func NewRegistry(source ports.BuildScriptSource, changes ports.ChangeSource, opts ...Option) *Registry {
	return &Registry{
		source:  source,
		changes: changes,
		opts:    opts,
	}
}

// Options returns the provider for the project enclosing path.
// Every file of a project maps to the same provider.
func (r *Registry) Options(path string) (*Provider, error) {
	project, err := r.source.ResolveProject(path)
	if err != nil {
		return nil, err
	}
	return r.ForProject(project)
}

// ForProject returns the provider for project, creating it on first use.
func (r *Registry) ForProject(project domain.Project) (*Provider, error) {
	if project.IsZero() {
		return nil, domain.ErrInvalidProject
	}

	if e, ok := r.providers.Load(project.Root); ok {
		return e.(*registryEntry).get()
	}

	fresh := &registryEntry{}
	fresh.get = sync.OnceValues(func() (*Provider, error) {
		p, err := NewProvider(project, r.source, r.changes, r.opts...)
		if err != nil {
			return nil, err
		}
		fresh.built.Store(p)
		// A provider finished after Close is closed here; Provider.Close is idempotent.
		if r.closed.Load() {
			p.Close()
		}
		return p, nil
	})
	e, _ := r.providers.LoadOrStore(project.Root, fresh)
	return e.(*registryEntry).get()
}

// Len returns the number of projects with a provider.
func (r *Registry) Len() int {
	n := 0
	r.providers.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Close stops change notifications for every provider. It does not construct providers
// that were never built or wait for ones under construction; those close themselves.
func (r *Registry) Close() {
	r.closed.Store(true)
	r.providers.Range(func(_, e any) bool {
		if p := e.(*registryEntry).built.Load(); p != nil {
			p.Close()
		}
		return true
	})
}
