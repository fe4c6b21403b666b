package container

// Resolved is the result of a general lookup: either a scoped value owned by
// the caller or a handle to a singleton shared with every other caller.
type Resolved[T any] struct {
	kind   ProviderKind
	owned  T
	shared *T
}

// ScopedResolved wraps an owned value.
func ScopedResolved[T any](v T) Resolved[T] {
	return Resolved[T]{kind: KindScoped, owned: v}
}

// SingletonResolved wraps a shared handle.
func SingletonResolved[T any](p *T) Resolved[T] {
	return Resolved[T]{kind: KindSingleton, shared: p}
}

// Kind returns the lifetime of the provider that produced r.
func (r Resolved[T]) Kind() ProviderKind { return r.kind }

// IsScoped reports whether the value belongs to the caller.
func (r Resolved[T]) IsScoped() bool { return r.kind == KindScoped }

// IsSingleton reports whether the value is shared.
func (r Resolved[T]) IsSingleton() bool { return r.kind == KindSingleton }

// Ptr points at the value: the owned copy for scoped results, the shared
// value for singletons. It returns nil for the zero Resolved.
func (r *Resolved[T]) Ptr() *T {
	switch r.kind {
	case KindScoped:
		return &r.owned
	case KindSingleton:
		return r.shared
	default:
		return nil
	}
}

// Value returns a copy of the value.
func (r Resolved[T]) Value() T {
	if r.kind == KindSingleton && r.shared != nil {
		return *r.shared
	}
	return r.owned
}

// GetMut returns a pointer the caller may write through. Scoped values always
// qualify. Singletons never do: the registry keeps its own reference, so a
// handle obtained from it is never the sole owner.
func (r *Resolved[T]) GetMut() (*T, bool) {
	if r.kind == KindScoped {
		return &r.owned, true
	}
	return nil, false
}

// IntoScoped returns the owned value if r is scoped.
func (r Resolved[T]) IntoScoped() (T, bool) {
	if r.kind != KindScoped {
		var zero T
		return zero, false
	}
	return r.owned, true
}

// IntoSingleton returns the shared handle if r is a singleton.
func (r Resolved[T]) IntoSingleton() (*T, bool) {
	if r.kind != KindSingleton {
		return nil, false
	}
	return r.shared, true
}
