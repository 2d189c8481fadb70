package options

import "sync"

// Subscription identifies a registered change callback.
type Subscription uint64

// Broadcaster is a set of change callbacks.
// The zero value is ready for use.
type Broadcaster struct {
	mu   sync.Mutex
	next Subscription
	subs map[Subscription]func()
}

// Subscribe registers fn and returns the handle used to remove it.
func (b *Broadcaster) Subscribe(fn func()) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[Subscription]func())
	}
	b.next++
	b.subs[b.next] = fn
	return b.next
}

// Unsubscribe removes the callback registered under id. Unknown ids are ignored.
func (b *Broadcaster) Unsubscribe(id Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Len returns the number of registered callbacks.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Fire invokes every registered callback once.
// Callbacks run after the lock is released, so they may subscribe, unsubscribe
// or otherwise re-enter their owner.
func (b *Broadcaster) Fire() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
