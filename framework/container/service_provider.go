package container

import "reflect"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations.
//
// Register only adds providers. Boot runs after every provider of the same
// setup pass has been registered, so it may resolve anything.
//
//	type GreetingProvider struct{ container.BaseProvider }
//
//	func (p *GreetingProvider) Register(c *container.Container) {
//	    container.AddScopedNamed(c, "en_msg", func() string { return "hello" })
//	    container.AddConstruct(c, NewGreeter)
//	}
type ServiceProvider interface {
	// Register adds providers to the container.
	// Do NOT resolve other entries here; use Boot for that.
	Register(c *Container)

	// Boot is called after all providers are registered.
	Boot(c *Container)
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider gives a no-op Boot. Embed it and implement Register.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) {}

// ── ServiceProviders ──────────────────────────────────────────────────────────

// ServiceProviders runs the Register and Boot phases of a set of providers
// against one container.
type ServiceProviders struct {
	c          *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewServiceProviders creates a registry bound to c.
func NewServiceProviders(c *Container) *ServiceProviders {
	return &ServiceProviders{
		c:          c,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register calls p.Register. A provider registered twice is ignored when it
// can be compared with ==; other providers are registered every time.
// After Boot, a newly registered provider is booted immediately.
func (r *ServiceProviders) Register(p ServiceProvider) {
	if reflect.ValueOf(p).Comparable() {
		if r.registered[p] {
			return
		}
		r.registered[p] = true
	}

	p.Register(r.c)
	r.providers = append(r.providers, p)

	if r.booted {
		p.Boot(r.c)
	}
}

// Boot calls Boot on every registered provider, once.
func (r *ServiceProviders) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, p := range r.providers {
		p.Boot(r.c)
	}
}

// Booted reports whether Boot has run.
func (r *ServiceProviders) Booted() bool { return r.booted }

// Providers returns the registered providers in registration order.
func (r *ServiceProviders) Providers() []ServiceProvider { return r.providers }
