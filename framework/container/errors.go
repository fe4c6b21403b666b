package container

import "errors"

var (
	// ErrPoisoned is raised by a lazy singleton whose constructor panicked.
	ErrPoisoned = errors.New("container: lazy value poisoned by a failed constructor")

	// ErrFrozen is raised when a frozen container is mutated.
	ErrFrozen = errors.New("container: container is frozen")

	// ErrInitializing is returned by Bootstrap.Initialize when another caller
	// was mid-initialization.
	ErrInitializing = errors.New("container: the container was initializing")

	// ErrAlreadyInitialized is returned by Bootstrap.Initialize once the
	// container has been published.
	ErrAlreadyInitialized = errors.New("container: the container was already initialized")

	// ErrNotInitialized is raised by MustContainer before initialization.
	ErrNotInitialized = errors.New("container: container not initialized")
)

// NotFoundError is raised by the Must* resolvers when no value of the
// requested kind is registered under Key.
type NotFoundError struct {
	Key  Key
	Kind ProviderKind
}

func (e *NotFoundError) Error() string {
	if e.Kind == 0 {
		return "container: " + e.Key.String() + " not found"
	}
	return "container: " + e.Kind.String() + " " + e.Key.String() + " not found"
}
