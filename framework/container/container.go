package container

import (
	"cmp"
	"iter"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/km-arc/go-inject/framework/log"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container maps keys to providers.
//
// Registration is expected to happen in one setup pass, resolution afterwards.
// While the container is mutable an RWMutex guards the map. After Freeze the
// map is read without locking and every mutation panics with ErrFrozen.
//
// Factories run without any lock held, so a constructor may resolve other
// entries of the same container. Cycles are not detected.
type Container struct {
	mu        sync.RWMutex
	frozen    atomic.Bool
	providers map[Key]Provider
	hooks     []func(Key, any)
	log       log.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger makes the container log registrations and lazy builds.
func WithLogger(l log.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.log = log.WithAttrs(l, log.KeyComponent, "container")
		}
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		providers: make(map[Key]Provider),
		log:       log.Null,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Insert stores p under key, replacing any previous provider. The evicted
// provider is returned with true when there was one.
func (c *Container) Insert(key Key, p Provider) (Provider, bool) {
	c.lockMutable()
	prev, replaced := c.providers[key]
	c.providers[key] = p
	c.mu.Unlock()

	if replaced {
		c.log.Debug("provider replaced", log.KeyKey, key.String(), log.KeyKind, p.Kind().String())
	} else {
		c.log.Debug("provider registered", log.KeyKey, key.String(), log.KeyKind, p.Kind().String())
	}
	return prev, replaced
}

// TryInsert stores p under key only if the key is free, and reports whether
// it did.
func (c *Container) TryInsert(key Key, p Provider) bool {
	c.lockMutable()
	_, exists := c.providers[key]
	if !exists {
		c.providers[key] = p
	}
	c.mu.Unlock()

	if exists {
		c.log.Debug("provider already registered", log.KeyKey, key.String())
		return false
	}
	c.log.Debug("provider registered", log.KeyKey, key.String(), log.KeyKind, p.Kind().String())
	return true
}

// ── Lookup ────────────────────────────────────────────────────────────────────

// Provider returns the provider registered under key.
func (c *Container) Provider(key Key) (Provider, bool) {
	if c.frozen.Load() {
		p, ok := c.providers[key]
		return p, ok
	}
	c.mu.RLock()
	p, ok := c.providers[key]
	c.mu.RUnlock()
	return p, ok
}

// Contains reports whether a provider is registered under key.
func (c *Container) Contains(key Key) bool {
	_, ok := c.Provider(key)
	return ok
}

// Len returns the number of providers.
func (c *Container) Len() int {
	if c.frozen.Load() {
		return len(c.providers)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.providers)
}

// IsEmpty reports whether no provider is registered.
func (c *Container) IsEmpty() bool { return c.Len() == 0 }

// Keys returns every registered key sorted by their string form.
func (c *Container) Keys() []Key {
	keys := make([]Key, 0, c.Len())
	for k := range c.All() {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		return cmp.Compare(a.String(), b.String())
	})
	return keys
}

// Providers returns a snapshot of every registered provider.
func (c *Container) Providers() []Provider {
	out := make([]Provider, 0, c.Len())
	for _, p := range c.All() {
		out = append(out, p)
	}
	return out
}

// All iterates over a snapshot of the (key, provider) pairs. Iteration order
// is unspecified.
func (c *Container) All() iter.Seq2[Key, Provider] {
	snapshot := c.snapshot()
	return func(yield func(Key, Provider) bool) {
		for k, p := range snapshot {
			if !yield(k, p) {
				return
			}
		}
	}
}

// ── Admin ─────────────────────────────────────────────────────────────────────

// Remove deletes the provider under key and returns it.
func (c *Container) Remove(key Key) (Provider, bool) {
	c.lockMutable()
	p, ok := c.providers[key]
	delete(c.providers, key)
	c.mu.Unlock()

	if ok {
		c.log.Debug("provider removed", log.KeyKey, key.String())
	}
	return p, ok
}

// Clear removes every provider. Resolution hooks stay.
func (c *Container) Clear() {
	c.lockMutable()
	n := len(c.providers)
	c.providers = make(map[Key]Provider)
	c.mu.Unlock()

	c.log.Debug("container cleared", log.KeyCount, n)
}

// Clone returns a mutable container holding the same providers and
// resolution hooks. Providers are aliased: a lazy singleton built through one
// container is built for both.
func (c *Container) Clone() *Container {
	if !c.frozen.Load() {
		c.mu.RLock()
		defer c.mu.RUnlock()
	}
	providers := make(map[Key]Provider, len(c.providers))
	for k, p := range c.providers {
		providers[k] = p
	}
	return &Container{
		providers: providers,
		hooks:     slices.Clone(c.hooks),
		log:       c.log,
	}
}

// Freeze makes the container read-only. Reads no longer take the lock.
// Freezing twice is a no-op.
func (c *Container) Freeze() {
	c.mu.Lock()
	already := c.frozen.Swap(true)
	c.mu.Unlock()

	if !already {
		c.log.Debug("container frozen", log.KeyCount, len(c.providers))
	}
}

// IsFrozen reports whether Freeze has been called.
func (c *Container) IsFrozen() bool { return c.frozen.Load() }

// ── Helpers ───────────────────────────────────────────────────────────────────

// lockMutable takes the write lock, panicking if the container is frozen.
// Freeze flips the flag under the same lock, so no write can slip past it.
func (c *Container) lockMutable() {
	c.mu.Lock()
	if c.frozen.Load() {
		c.mu.Unlock()
		panic(ErrFrozen)
	}
}

// mustBeMutable panics with ErrFrozen if the container is frozen.
func (c *Container) mustBeMutable() {
	c.lockMutable()
	c.mu.Unlock()
}

func (c *Container) snapshot() map[Key]Provider {
	if !c.frozen.Load() {
		c.mu.RLock()
		defer c.mu.RUnlock()
	}
	out := make(map[Key]Provider, len(c.providers))
	for k, p := range c.providers {
		out[k] = p
	}
	return out
}
