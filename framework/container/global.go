package container

import (
	"runtime"
	"sync/atomic"

	"github.com/km-arc/go-inject/framework/log"
)

// BootstrapState is the lifecycle of a Bootstrap.
type BootstrapState uint32

const (
	StateUninitialized BootstrapState = iota
	StateInitializing
	StateInitialized
)

func (s BootstrapState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateInitialized:
		return "initialized"
	default:
		return "unknown"
	}
}

// Bootstrap publishes exactly one Container, built once by a setup function
// and then read by any number of goroutines.
//
// The container is frozen before it is published, so reads through it take
// no lock: the only cost on the read path is the atomic pointer load.
//
// A Bootstrap is an ordinary value; tests can create as many as they need.
// The process-wide one is returned by Global.
type Bootstrap struct {
	state     atomic.Uint32
	container atomic.Pointer[Container]
	opts      []Option
	log       log.Logger
}

// NewBootstrap returns an uninitialized Bootstrap. opts are applied to the
// container it builds.
func NewBootstrap(opts ...Option) *Bootstrap {
	return &Bootstrap{opts: opts, log: log.Null}
}

// SetLogger sets the logger used for lifecycle messages and by the container
// built afterwards. It is not safe to call concurrently with Initialize.
func (b *Bootstrap) SetLogger(l log.Logger) {
	if l == nil {
		l = log.Null
	}
	b.log = log.WithAttrs(l, log.KeyComponent, "bootstrap")
	b.opts = append(b.opts, WithLogger(l))
}

// State returns the current lifecycle state.
func (b *Bootstrap) State() BootstrapState {
	return BootstrapState(b.state.Load())
}

// Initialize builds and publishes the container.
//
// Only the first caller runs setup. A caller that finds another one
// mid-setup waits for it to finish and then returns ErrInitializing; it does
// not get the container. A caller arriving after publication returns
// ErrAlreadyInitialized.
//
// If setup panics the Bootstrap goes back to StateUninitialized and the
// panic is re-raised.
func (b *Bootstrap) Initialize(setup func(*Container)) error {
	for {
		if b.state.CompareAndSwap(uint32(StateUninitialized), uint32(StateInitializing)) {
			b.build(setup)
			return nil
		}

		switch b.State() {
		case StateInitializing:
			for b.State() == StateInitializing {
				runtime.Gosched()
			}
			b.log.Debug("lost initialization race", log.KeyState, b.State().String())
			return ErrInitializing
		case StateInitialized:
			return ErrAlreadyInitialized
		}
		// A failed setup rolled the state back between the CAS and the load.
	}
}

func (b *Bootstrap) build(setup func(*Container)) {
	published := false
	defer func() {
		if !published {
			b.state.Store(uint32(StateUninitialized))
			b.log.Error("container setup panicked")
		}
	}()

	c := New(b.opts...)
	if setup != nil {
		setup(c)
	}
	c.Freeze()
	b.container.Store(c)
	b.state.Store(uint32(StateInitialized))
	published = true

	b.log.Info("container initialized", log.KeyCount, c.Len())
}

// InitializeWith initializes the container from service providers: every
// Register runs first, then every Boot.
func (b *Bootstrap) InitializeWith(providers ...ServiceProvider) error {
	return b.Initialize(func(c *Container) {
		reg := NewServiceProviders(c)
		for _, p := range providers {
			reg.Register(p)
		}
		reg.Boot()
	})
}

// Container returns the published container. It never blocks.
func (b *Bootstrap) Container() (*Container, bool) {
	if b.State() != StateInitialized {
		return nil, false
	}
	c := b.container.Load()
	return c, c != nil
}

// MustContainer is Container that panics with ErrNotInitialized.
func (b *Bootstrap) MustContainer() *Container {
	c, ok := b.Container()
	if !ok {
		panic(ErrNotInitialized)
	}
	return c
}

// ── Process-wide instance ─────────────────────────────────────────────────────

var global = NewBootstrap()

// Global returns the process-wide Bootstrap.
func Global() *Bootstrap { return global }

// InitGlobal initializes the process-wide container.
//
//	err := container.InitGlobal(func(c *container.Container) {
//	    container.AddScoped(c, func() string { return "Hello World" })
//	    container.AddSingleton(c, &Counter{})
//	})
func InitGlobal(setup func(*Container)) error {
	return global.Initialize(setup)
}

// GlobalContainer returns the process-wide container once initialized.
func GlobalContainer() (*Container, bool) {
	return global.Container()
}

// MustGlobal returns the process-wide container or panics with
// ErrNotInitialized.
func MustGlobal() *Container {
	return global.MustContainer()
}
