// Package container provides a typed dependency-resolution container.
//
// # Overview
//
// A Container maps a Key (a Go type plus an optional name) to a Provider.
// Providers come in two lifetimes:
//
//   - Scoped: a new value is built on every resolution, either by a
//     zero-argument factory or by a constructor that receives the container
//     so it can resolve its own dependencies.
//   - Singleton: one value is shared by every resolution. It is either
//     supplied at registration or built lazily, exactly once, on first use.
//
// Values are stored type-erased and recovered with a checked cast. Absence,
// a provider of the other lifetime and a type mismatch are all reported as
// (zero, false); the caller decides whether that is fatal.
//
// # Registration
//
//	c := container.New()
//
//	// Scoped: new value per lookup
//	container.AddScoped(c, func() string { return "hello" })
//
//	// Scoped with dependencies
//	container.AddConstruct(c, func(c *container.Container) *Greeter {
//	    msg := container.MustGetScopedNamed[string](c, "en_msg")
//	    return &Greeter{Message: msg}
//	})
//
//	// Singleton value, optionally named
//	container.AddSingletonNamed(c, "n", 5)
//
//	// Lazy singleton, built on first resolution
//	container.AddLazySingleton(c, func(c *container.Container) *sync.Mutex {
//	    return &sync.Mutex{}
//	})
//
// The Add* functions replace an existing registration and return it; the
// TryAdd* functions keep the first one.
//
// A type with a Resolve method builds itself:
//
//	func (Greeter) Resolve(c *container.Container) Greeter { ... }
//
//	container.AddDeps[Greeter](c)
//
// # Decorating and observing
//
// Extend wraps what a registration produces, and OnResolved runs a hook after
// every successful resolution:
//
//	container.Extend(c, func(g Greeter, c *container.Container) Greeter {
//	    g.Message += "!"
//	    return g
//	})
//	c.OnResolved(func(k container.Key, v any) { ... })
//
// # Resolving
//
//	s, ok := container.GetScoped[string](c)            // "hello", true
//	n, ok := container.GetSingletonNamed[int](c, "n")  // *int, shared
//	r, ok := container.Get[int](c)                     // Resolved[int], either kind
//	all := container.GetAll[int](c)                    // every name
//
// Singletons are handed out as *T; writes through one handle are visible
// through every other. Synchronizing those writes is up to the value.
//
// # Global container
//
// A Bootstrap builds one container, freezes it and publishes it for
// lock-free reads:
//
//	err := container.InitGlobal(func(c *container.Container) { ... })
//	c := container.MustGlobal()
//
// Concurrent Initialize calls have one winner; the others get
// ErrInitializing or ErrAlreadyInitialized.
//
// # Cycles
//
// Nothing detects dependency cycles. A scoped constructor that resolves
// itself recurses until the stack overflows; a lazy singleton that resolves
// itself while being built deadlocks.
package container
