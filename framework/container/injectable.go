package container

// Injectable is a type that knows how to build itself from the container.
// Resolve is called on the zero value of T, so it must not read its receiver.
//
//	type Greeter struct{ Message string }
//
//	func (Greeter) Resolve(c *container.Container) Greeter {
//	    return Greeter{Message: container.MustGetScopedNamed[string](c, "en_msg")}
//	}
//
//	container.AddDeps[Greeter](c)
type Injectable[T any] interface {
	Resolve(c *Container) T
}

func injectConstructor[T Injectable[T]]() func(*Container) T {
	return func(c *Container) T {
		var zero T
		return zero.Resolve(c)
	}
}

// AddDeps registers T as scoped, built by its own Resolve method on every
// resolution. It replaces an existing registration like AddConstruct.
func AddDeps[T Injectable[T]](c *Container) (Provider, bool) {
	return AddConstruct(c, injectConstructor[T]())
}

// AddDepsNamed is AddDeps under a name.
func AddDepsNamed[T Injectable[T]](c *Container, name string) (Provider, bool) {
	return AddConstructNamed(c, name, injectConstructor[T]())
}

// TryAddDeps is AddDeps that keeps an existing registration.
func TryAddDeps[T Injectable[T]](c *Container) bool {
	return TryAddConstruct(c, injectConstructor[T]())
}

// AddLazyDeps registers T as a lazy singleton built by its Resolve method.
func AddLazyDeps[T Injectable[T]](c *Container) (Provider, bool) {
	return AddLazySingleton(c, injectConstructor[T]())
}
