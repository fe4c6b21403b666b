package container

// ProviderKind tells scoped and singleton providers apart.
type ProviderKind uint8

const (
	// KindScoped builds a new value per resolution.
	KindScoped ProviderKind = iota + 1
	// KindSingleton shares one value across resolutions.
	KindSingleton
)

func (k ProviderKind) String() string {
	switch k {
	case KindScoped:
		return "scoped"
	case KindSingleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// Provider is the strategy stored for one Key. Copies are aliases: they share
// the factory function or the singleton value of the original.
type Provider struct {
	kind      ProviderKind
	scoped    ScopedProvider
	singleton SingletonProvider
}

// ScopedOf returns a scoped provider built from a zero-argument factory.
func ScopedOf[T any](f func() T) Provider {
	return Provider{kind: KindScoped, scoped: NewFactory(f)}
}

// ConstructOf returns a scoped provider whose constructor receives the
// container.
func ConstructOf[T any](f func(*Container) T) Provider {
	return Provider{kind: KindScoped, scoped: NewConstruct(f)}
}

// SingletonOf returns a singleton provider around v.
func SingletonOf[T any](v T) Provider {
	return Provider{kind: KindSingleton, singleton: NewInstance(v)}
}

// LazySingletonOf returns a singleton provider built by f on first use.
func LazySingletonOf[T any](f func(*Container) T) Provider {
	return Provider{kind: KindSingleton, singleton: NewLazy(f)}
}

// Kind returns the lifetime policy of p.
func (p Provider) Kind() ProviderKind { return p.kind }

// IsScoped reports whether p builds a value per resolution.
func (p Provider) IsScoped() bool { return p.kind == KindScoped }

// IsSingleton reports whether p shares one value.
func (p Provider) IsSingleton() bool { return p.kind == KindSingleton }

// Scoped returns the scoped form of p.
func (p Provider) Scoped() (ScopedProvider, bool) {
	return p.scoped, p.kind == KindScoped
}

// Singleton returns the singleton form of p.
func (p Provider) Singleton() (SingletonProvider, bool) {
	return p.singleton, p.kind == KindSingleton
}

func (p Provider) String() string {
	switch p.kind {
	case KindScoped:
		return "Provider::" + p.scoped.String()
	case KindSingleton:
		return "Provider::" + p.singleton.String()
	default:
		return "Provider::<empty>"
	}
}

// ── Typed probes ──────────────────────────────────────────────────────────────

// ScopedValue runs a factory provider and returns its value as T. It returns
// false for construct providers, singletons and type mismatches.
func ScopedValue[T any](p Provider) (T, bool) {
	var zero T
	if p.kind != KindScoped {
		return zero, false
	}
	e, ok := p.scoped.CallFactory()
	if !ok {
		return zero, false
	}
	return Unerase[T](e)
}

// ConstructValue runs a construct provider with c and returns its value as T.
func ConstructValue[T any](p Provider, c *Container) (T, bool) {
	var zero T
	if p.kind != KindScoped {
		return zero, false
	}
	e, ok := p.scoped.CallConstruct(c)
	if !ok {
		return zero, false
	}
	return Unerase[T](e)
}

// SingletonValue returns the shared value of an instance provider or of a
// lazy provider that has already been built. It never builds.
func SingletonValue[T any](p Provider) (*T, bool) {
	if p.kind != KindSingleton {
		return nil, false
	}
	s, ok := p.singleton.Peek()
	if !ok {
		return nil, false
	}
	return Unshare[T](s)
}

// SingletonValueWith is SingletonValue that builds a lazy provider with c.
func SingletonValueWith[T any](p Provider, c *Container) (*T, bool) {
	if p.kind != KindSingleton {
		return nil, false
	}
	s, ok := p.singleton.Get(c)
	if !ok {
		return nil, false
	}
	return Unshare[T](s)
}
