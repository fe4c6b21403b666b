package container

import (
	"sync"
	"sync/atomic"
)

// LateInit is a write-once cell whose value is built on first access by a
// constructor taking one argument. The argument is supplied by the first
// caller of GetOrInit, which lets lazy singletons receive the container at
// resolution time instead of registration time.
//
// The constructor runs at most once. Concurrent first callers block until the
// value is published and then all observe the same *T.
//
// A constructor that panics poisons the cell: the panic reaches the caller
// that ran it and every later GetOrInit panics with ErrPoisoned. Calling
// GetOrInit on the same cell from inside its own constructor deadlocks: a
// goroutine has no identity to tell that call apart from a concurrent first
// caller, which must wait.
type LateInit[A, T any] struct {
	once     sync.Once
	init     func(A) T
	value    T
	done     atomic.Bool
	poisoned atomic.Bool
}

// NewLateInit stores f without calling it.
func NewLateInit[A, T any](f func(A) T) *LateInit[A, T] {
	return &LateInit[A, T]{init: f}
}

// IsInitialized reports whether the value has been built.
func (c *LateInit[A, T]) IsInitialized() bool { return c.done.Load() }

// IsPoisoned reports whether a previous build failed.
func (c *LateInit[A, T]) IsPoisoned() bool { return c.poisoned.Load() }

// Get returns the value if it has been built. It never runs the constructor.
func (c *LateInit[A, T]) Get() (*T, bool) {
	if !c.done.Load() {
		return nil, false
	}
	return &c.value, true
}

// GetOrInit returns the value, building it with arg if no caller has yet.
func (c *LateInit[A, T]) GetOrInit(arg A) *T {
	if c.done.Load() {
		return &c.value
	}

	c.once.Do(func() {
		f := c.init
		c.init = nil
		if f == nil {
			c.poisoned.Store(true)
			return
		}
		defer func() {
			if !c.done.Load() {
				c.poisoned.Store(true)
			}
		}()
		c.value = f(arg)
		c.done.Store(true)
	})

	if !c.done.Load() {
		panic(ErrPoisoned)
	}
	return &c.value
}
