package options

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cell is a mutex-guarded memoization slot for a lazily computed value.
//
// Each Invalidate starts a new epoch. Within an epoch the slot goes from empty
// to filled at most once, and every caller that overlaps a fill observes the
// same stored value. Concurrent misses in one epoch share a single computation.
// The zero value is an empty cell ready for use.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	valid bool
	epoch uint64

	group singleflight.Group
}

// Get returns the cached value, running compute to fill the cell if it is empty.
// compute runs without the cell lock held.
func (c *Cell[T]) Get(compute func() T) T {
	c.mu.Lock()
	if c.valid {
		v := c.value
		c.mu.Unlock()
		return v
	}
	epoch := c.epoch
	c.mu.Unlock()

	res, _, _ := c.group.Do(strconv.FormatUint(epoch, 10), func() (any, error) {
		return compute(), nil
	})
	computed, _ := res.(T)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Whoever stored first wins; later computations are discarded.
	if c.valid {
		return c.value
	}
	// A computation from an older epoch must not fill the current one.
	if c.epoch == epoch {
		c.value = computed
		c.valid = true
	}
	return computed
}

// Peek returns the cached value and whether the cell is filled, without computing.
func (c *Cell[T]) Peek() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.valid
}

// Invalidate empties the cell and starts a new epoch.
// It reports whether the cell held a value.
func (c *Cell[T]) Invalidate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	wasValid := c.valid
	c.value = zero
	c.valid = false
	c.epoch++
	return wasValid
}
