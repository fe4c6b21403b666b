package container

// SingletonProvider hands out one shared value. It is either an instance
// built at registration or a lazy cell built on first resolution with the
// resolving container as argument. After the first build both forms behave
// the same.
type SingletonProvider struct {
	instance Shared
	lazy     *LateInit[*Container, Shared]
}

// NewInstance stores an already built value.
func NewInstance[T any](v T) SingletonProvider {
	return SingletonProvider{instance: Share(v)}
}

// NewLazy stores a constructor that runs on the first resolution.
func NewLazy[T any](f func(*Container) T) SingletonProvider {
	return SingletonProvider{
		lazy: NewLateInit(func(c *Container) Shared {
			return Share(f(c))
		}),
	}
}

// IsInstance reports whether the value was provided at registration.
func (s SingletonProvider) IsInstance() bool { return s.lazy == nil && !s.instance.IsZero() }

// IsLazy reports whether the value is built on first access.
func (s SingletonProvider) IsLazy() bool { return s.lazy != nil }

// IsInitialized reports whether the shared value exists yet.
func (s SingletonProvider) IsInitialized() bool {
	if s.lazy != nil {
		return s.lazy.IsInitialized()
	}
	return !s.instance.IsZero()
}

// Peek returns the shared value without building it.
func (s SingletonProvider) Peek() (Shared, bool) {
	if s.lazy == nil {
		return s.instance, !s.instance.IsZero()
	}
	v, ok := s.lazy.Get()
	if !ok {
		return Shared{}, false
	}
	return *v, true
}

// Get returns the shared value, building a lazy one with c if needed.
func (s SingletonProvider) Get(c *Container) (Shared, bool) {
	if s.lazy == nil {
		return s.instance, !s.instance.IsZero()
	}
	if v, ok := s.lazy.Get(); ok {
		return *v, true
	}
	return *s.lazy.GetOrInit(c), true
}

func (s SingletonProvider) String() string {
	switch {
	case s.lazy != nil && s.lazy.IsInitialized():
		return "Singleton::Lazy(initialized)"
	case s.lazy != nil:
		return "Singleton::Lazy(..)"
	default:
		return "Singleton::Instance(" + s.instance.Type().String() + ")"
	}
}
