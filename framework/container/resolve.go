package container

import "github.com/km-arc/go-inject/framework/log"

// ── Registration: insert or replace ──────────────────────────────────────────
//
// The Add* functions replace any provider already stored under the same key
// and return the evicted one with true.

// AddScoped registers f to build a new T on every resolution.
//
//	container.AddScoped(c, func() string { return "hello" })
func AddScoped[T any](c *Container, f func() T) (Provider, bool) {
	return c.Insert(KeyOf[T](), ScopedOf(f))
}

// AddScopedNamed is AddScoped under a name.
func AddScopedNamed[T any](c *Container, name string, f func() T) (Provider, bool) {
	return c.Insert(NamedKey[T](name), ScopedOf(f))
}

// AddConstruct registers f to build a new T on every resolution, resolving
// its dependencies from the container.
//
//	container.AddConstruct(c, func(c *container.Container) *Greeter {
//	    msg, _ := container.GetScopedNamed[string](c, "en_msg")
//	    return &Greeter{Message: msg}
//	})
func AddConstruct[T any](c *Container, f func(*Container) T) (Provider, bool) {
	return c.Insert(KeyOf[T](), ConstructOf(f))
}

// AddConstructNamed is AddConstruct under a name.
func AddConstructNamed[T any](c *Container, name string, f func(*Container) T) (Provider, bool) {
	return c.Insert(NamedKey[T](name), ConstructOf(f))
}

// AddSingleton registers v as the shared T.
func AddSingleton[T any](c *Container, v T) (Provider, bool) {
	return c.Insert(KeyOf[T](), SingletonOf(v))
}

// AddSingletonNamed is AddSingleton under a name.
func AddSingletonNamed[T any](c *Container, name string, v T) (Provider, bool) {
	return c.Insert(NamedKey[T](name), SingletonOf(v))
}

// AddLazySingleton registers f to build the shared T on first resolution.
// f is not called here.
func AddLazySingleton[T any](c *Container, f func(*Container) T) (Provider, bool) {
	return c.Insert(KeyOf[T](), LazySingletonOf(f))
}

// AddLazySingletonNamed is AddLazySingleton under a name.
func AddLazySingletonNamed[T any](c *Container, name string, f func(*Container) T) (Provider, bool) {
	return c.Insert(NamedKey[T](name), LazySingletonOf(f))
}

// ── Registration: insert if absent ───────────────────────────────────────────
//
// The TryAdd* functions leave an existing provider in place and report
// whether they stored anything.

// TryAddScoped is AddScoped that keeps an existing registration.
func TryAddScoped[T any](c *Container, f func() T) bool {
	return c.TryInsert(KeyOf[T](), ScopedOf(f))
}

// TryAddScopedNamed is AddScopedNamed that keeps an existing registration.
func TryAddScopedNamed[T any](c *Container, name string, f func() T) bool {
	return c.TryInsert(NamedKey[T](name), ScopedOf(f))
}

// TryAddConstruct is AddConstruct that keeps an existing registration.
func TryAddConstruct[T any](c *Container, f func(*Container) T) bool {
	return c.TryInsert(KeyOf[T](), ConstructOf(f))
}

// TryAddConstructNamed is AddConstructNamed that keeps an existing registration.
func TryAddConstructNamed[T any](c *Container, name string, f func(*Container) T) bool {
	return c.TryInsert(NamedKey[T](name), ConstructOf(f))
}

// TryAddSingleton is AddSingleton that keeps an existing registration.
func TryAddSingleton[T any](c *Container, v T) bool {
	return c.TryInsert(KeyOf[T](), SingletonOf(v))
}

// TryAddSingletonNamed is AddSingletonNamed that keeps an existing registration.
func TryAddSingletonNamed[T any](c *Container, name string, v T) bool {
	return c.TryInsert(NamedKey[T](name), SingletonOf(v))
}

// TryAddLazySingleton is AddLazySingleton that keeps an existing registration.
func TryAddLazySingleton[T any](c *Container, f func(*Container) T) bool {
	return c.TryInsert(KeyOf[T](), LazySingletonOf(f))
}

// TryAddLazySingletonNamed is AddLazySingletonNamed that keeps an existing
// registration.
func TryAddLazySingletonNamed[T any](c *Container, name string, f func(*Container) T) bool {
	return c.TryInsert(NamedKey[T](name), LazySingletonOf(f))
}

// ── Resolution ────────────────────────────────────────────────────────────────
//
// Every resolver reports absence with false: a missing key, a provider of the
// other kind and a type mismatch all look the same to the caller.

// Get resolves T whatever its lifetime.
func Get[T any](c *Container) (Resolved[T], bool) {
	return resolveKey[T](c, KeyOf[T]())
}

// GetNamed resolves the T registered under name.
func GetNamed[T any](c *Container, name string) (Resolved[T], bool) {
	return resolveKey[T](c, NamedKey[T](name))
}

// GetScoped builds a new T from a scoped provider.
func GetScoped[T any](c *Container) (T, bool) {
	return resolveScoped[T](c, KeyOf[T]())
}

// GetScopedNamed builds a new T from the scoped provider under name.
func GetScopedNamed[T any](c *Container, name string) (T, bool) {
	return resolveScoped[T](c, NamedKey[T](name))
}

// GetSingleton returns the shared T.
func GetSingleton[T any](c *Container) (*T, bool) {
	return resolveSingleton[T](c, KeyOf[T]())
}

// GetSingletonNamed returns the shared T registered under name.
func GetSingletonNamed[T any](c *Container, name string) (*T, bool) {
	return resolveSingleton[T](c, NamedKey[T](name))
}

// GetAll resolves every provider registered for T, named or not. Order is
// unspecified.
func GetAll[T any](c *Container) []Resolved[T] {
	rt := TypeOf[T]()
	var out []Resolved[T]
	for key, p := range c.All() {
		if key.Type() != rt {
			continue
		}
		if r, ok := resolveProvider[T](c, key, p); ok {
			out = append(out, r)
		}
	}
	return out
}

// ── Must resolvers ────────────────────────────────────────────────────────────

// MustGetScoped is GetScoped that panics with a *NotFoundError.
func MustGetScoped[T any](c *Container) T {
	v, ok := GetScoped[T](c)
	if !ok {
		panic(&NotFoundError{Key: KeyOf[T](), Kind: KindScoped})
	}
	return v
}

// MustGetScopedNamed is GetScopedNamed that panics with a *NotFoundError.
func MustGetScopedNamed[T any](c *Container, name string) T {
	v, ok := GetScopedNamed[T](c, name)
	if !ok {
		panic(&NotFoundError{Key: NamedKey[T](name), Kind: KindScoped})
	}
	return v
}

// MustGetSingleton is GetSingleton that panics with a *NotFoundError.
func MustGetSingleton[T any](c *Container) *T {
	v, ok := GetSingleton[T](c)
	if !ok {
		panic(&NotFoundError{Key: KeyOf[T](), Kind: KindSingleton})
	}
	return v
}

// MustGetSingletonNamed is GetSingletonNamed that panics with a *NotFoundError.
func MustGetSingletonNamed[T any](c *Container, name string) *T {
	v, ok := GetSingletonNamed[T](c, name)
	if !ok {
		panic(&NotFoundError{Key: NamedKey[T](name), Kind: KindSingleton})
	}
	return v
}

// ── Dispatch ──────────────────────────────────────────────────────────────────

func resolveKey[T any](c *Container, key Key) (Resolved[T], bool) {
	p, ok := c.Provider(key)
	if !ok {
		return Resolved[T]{}, false
	}
	return resolveProvider[T](c, key, p)
}

// resolveScoped checks the kind before running anything, so a lazy
// singleton is never built by a scoped lookup.
func resolveScoped[T any](c *Container, key Key) (T, bool) {
	var zero T
	p, ok := c.Provider(key)
	if !ok || p.kind != KindScoped {
		return zero, false
	}
	e, ok := p.scoped.call(c)
	if !ok {
		return zero, false
	}
	v, ok := Unerase[T](e)
	if !ok {
		return zero, false
	}
	c.fireResolved(key, v)
	return v, true
}

func resolveSingleton[T any](c *Container, key Key) (*T, bool) {
	p, ok := c.Provider(key)
	if !ok || p.kind != KindSingleton {
		return nil, false
	}
	s, ok := singletonValue(c, key, p.singleton)
	if !ok {
		return nil, false
	}
	ptr, ok := Unshare[T](s)
	if !ok {
		return nil, false
	}
	c.fireResolved(key, ptr)
	return ptr, true
}

func resolveProvider[T any](c *Container, key Key, p Provider) (Resolved[T], bool) {
	switch p.kind {
	case KindScoped:
		e, ok := p.scoped.call(c)
		if !ok {
			return Resolved[T]{}, false
		}
		v, ok := Unerase[T](e)
		if !ok {
			return Resolved[T]{}, false
		}
		c.fireResolved(key, v)
		return ScopedResolved(v), true

	case KindSingleton:
		s, ok := singletonValue(c, key, p.singleton)
		if !ok {
			return Resolved[T]{}, false
		}
		ptr, ok := Unshare[T](s)
		if !ok {
			return Resolved[T]{}, false
		}
		c.fireResolved(key, ptr)
		return SingletonResolved(ptr), true

	default:
		return Resolved[T]{}, false
	}
}

func singletonValue(c *Container, key Key, s SingletonProvider) (Shared, bool) {
	if s.IsLazy() && !s.IsInitialized() {
		c.log.Debug("building lazy singleton", log.KeyKey, key.String())
	}
	return s.Get(c)
}
