package watcher

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/jopts/internal/core/domain"
	"go.trai.ch/jopts/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ChangeSource = (*ProjectWatcher)(nil)

// ProjectWatcher implements ports.ChangeSource on top of a ports.Watcher.
// It watches each registered project root and notifies the project's callbacks whenever a
// watched file is touched. Bursts of events are coalesced by a Debouncer.
type ProjectWatcher struct {
	watcher  ports.Watcher
	settings domain.Settings
	logger   ports.Logger

	mu       sync.Mutex
	projects map[string]*watchedProject
	nextID   uint64
	started  bool

	startOnce sync.Once
	ctx       context.Context //nolint:containedctx // Lifetime of the event loop
	cancel    context.CancelFunc
	done      chan struct{}
}

type watchedProject struct {
	debouncer *Debouncer
	callbacks map[uint64]func()
}

// NewProjectWatcher creates a ProjectWatcher. Only root-level files accepted by
// settings.Watches trigger notifications.
func NewProjectWatcher(w ports.Watcher, settings domain.Settings, logger ports.Logger) *ProjectWatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &ProjectWatcher{
		watcher:  w,
		settings: settings,
		logger:   logger,
		projects: make(map[string]*watchedProject),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Register arranges for fn to run whenever a watched file in the project root is touched.
// If the root cannot be watched the failure is logged and fn is never called.
func (p *ProjectWatcher) Register(project domain.Project, fn func()) func() {
	p.startOnce.Do(p.start)

	root := project.Root

	// Add and Remove run under the lock so a root is never removed while being re-added.
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.projects[root]
	if !ok {
		if err := p.watcher.Add(root); err != nil {
			p.logger.Error(zerr.With(err, "root", root))
			return func() {}
		}
		entry = &watchedProject{
			debouncer: NewDebouncer(p.settings.Debounce, func([]string) { p.notify(root) }),
			callbacks: make(map[uint64]func()),
		}
		p.projects[root] = entry
	}

	p.nextID++
	id := p.nextID
	entry.callbacks[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() { p.unregister(root, id) })
	}
}

// Close stops the event loop and the underlying watcher. Pending notifications are dropped.
func (p *ProjectWatcher) Close() error {
	p.cancel()
	err := p.watcher.Stop()

	p.mu.Lock()
	started := p.started
	for root, entry := range p.projects {
		entry.debouncer.Stop()
		delete(p.projects, root)
	}
	p.mu.Unlock()

	if started {
		<-p.done
	}
	return err
}

func (p *ProjectWatcher) start() {
	if err := p.watcher.Start(p.ctx); err != nil {
		p.logger.Error(err)
		return
	}

	p.mu.Lock()
	p.started = true
	p.mu.Unlock()

	go p.run()
}

func (p *ProjectWatcher) run() {
	defer close(p.done)

	for event := range p.watcher.Events() {
		p.observe(event.Path)
	}
}

// observe debounces a change to path if path is a watched file of a registered root.
// Content is not compared: a write that restores earlier bytes must still invalidate.
func (p *ProjectWatcher) observe(path string) {
	root, name := filepath.Dir(path), filepath.Base(path)
	if !p.settings.Watches(name) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.projects[root]; ok {
		entry.debouncer.Add(path)
	}
}

// notify invokes the project's callbacks outside the lock.
func (p *ProjectWatcher) notify(root string) {
	p.mu.Lock()
	entry, ok := p.projects[root]
	if !ok {
		p.mu.Unlock()
		return
	}
	ids := slices.Sorted(maps.Keys(entry.callbacks))
	callbacks := make([]func(), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, entry.callbacks[id])
	}
	p.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func (p *ProjectWatcher) unregister(root string, id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.projects[root]
	if !ok {
		return
	}
	delete(entry.callbacks, id)
	if len(entry.callbacks) > 0 {
		return
	}

	entry.debouncer.Stop()
	delete(p.projects, root)
	if err := p.watcher.Remove(root); err != nil {
		p.logger.Warn(err.Error())
	}
}
