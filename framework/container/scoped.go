package container

// ScopedProvider builds a new value on every resolution. Exactly one of its
// two forms is set:
//   - factory: takes no arguments
//   - construct: receives the container to resolve its own dependencies
//
// Copies share the same function; a ScopedProvider is safe to copy.
type ScopedProvider struct {
	factory   func() Erased
	construct func(*Container) Erased
}

// NewFactory wraps a zero-argument constructor.
func NewFactory[T any](f func() T) ScopedProvider {
	return ScopedProvider{
		factory: func() Erased { return Erase[T](f()) },
	}
}

// NewConstruct wraps a constructor that resolves its dependencies from the
// container it is called with.
func NewConstruct[T any](f func(*Container) T) ScopedProvider {
	return ScopedProvider{
		construct: func(c *Container) Erased { return Erase[T](f(c)) },
	}
}

// IsFactory reports whether the provider takes no arguments.
func (s ScopedProvider) IsFactory() bool { return s.factory != nil }

// IsConstruct reports whether the provider needs the container.
func (s ScopedProvider) IsConstruct() bool { return s.construct != nil }

// CallFactory runs the factory form. It returns false for a construct
// provider instead of running it.
func (s ScopedProvider) CallFactory() (Erased, bool) {
	if s.factory == nil {
		return Erased{}, false
	}
	return s.factory(), true
}

// CallConstruct runs the construct form with c. It returns false for a
// factory provider.
func (s ScopedProvider) CallConstruct(c *Container) (Erased, bool) {
	if s.construct == nil {
		return Erased{}, false
	}
	return s.construct(c), true
}

// call runs whichever form is set.
func (s ScopedProvider) call(c *Container) (Erased, bool) {
	if s.factory != nil {
		return s.factory(), true
	}
	return s.CallConstruct(c)
}

func (s ScopedProvider) String() string {
	switch {
	case s.factory != nil:
		return "Scoped::Factory(..)"
	case s.construct != nil:
		return "Scoped::Construct(..)"
	default:
		return "Scoped::<empty>"
	}
}
