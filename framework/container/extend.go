package container

import "github.com/km-arc/go-inject/framework/log"

// ── Extend ────────────────────────────────────────────────────────────────────

// Extend decorates the T registered without a name and reports whether there
// was one to decorate.
//
//	container.Extend(c, func(l Logger, c *container.Container) Logger {
//	    return &timestampLogger{next: l}
//	})
//
// A scoped provider is wrapped, so f runs on every resolution; a factory
// becomes a construct provider. A lazy singleton that has not been built yet
// is wrapped, so f runs once when it is. A singleton that already holds its
// value is decorated in place now: handles handed out earlier see the result.
//
// Calls stack: the last Extend sees the output of the previous ones. Extend
// belongs to the setup pass and panics with ErrFrozen afterwards.
func Extend[T any](c *Container, f func(T, *Container) T) bool {
	return extendKey(c, KeyOf[T](), f)
}

// ExtendNamed is Extend for the T registered under name.
func ExtendNamed[T any](c *Container, name string, f func(T, *Container) T) bool {
	return extendKey(c, NamedKey[T](name), f)
}

func extendKey[T any](c *Container, key Key, f func(T, *Container) T) bool {
	c.mustBeMutable()

	p, ok := c.Provider(key)
	if !ok {
		return false
	}

	switch p.kind {
	case KindScoped:
		inner := p.scoped
		c.Insert(key, Provider{kind: KindScoped, scoped: ScopedProvider{
			construct: func(c *Container) Erased {
				e, ok := inner.call(c)
				if !ok {
					return e
				}
				v, ok := Unerase[T](e)
				if !ok {
					return e
				}
				return Erase[T](f(v, c))
			},
		}})

	case KindSingleton:
		if s, built := p.singleton.Peek(); built {
			ptr, ok := Unshare[T](s)
			if !ok {
				return false
			}
			*ptr = f(*ptr, c)
			break
		}
		inner := p.singleton
		c.Insert(key, Provider{kind: KindSingleton, singleton: SingletonProvider{
			lazy: NewLateInit(func(c *Container) Shared {
				s, ok := inner.Get(c)
				if !ok {
					return s
				}
				v, ok := Unshare[T](s)
				if !ok {
					return s
				}
				return Share(f(*v, c))
			}),
		}})

	default:
		return false
	}

	c.log.Debug("provider extended", log.KeyKey, key.String(), log.KeyKind, p.Kind().String())
	return true
}

// ── Resolution hooks ──────────────────────────────────────────────────────────

// OnResolved registers fn to run after every successful resolution, with the
// key and the value handed out: a T for scoped providers, the shared *T for
// singletons. Hooks run in registration order on the resolving goroutine.
//
//	c.OnResolved(func(k container.Key, v any) {
//	    metrics.Inc(k.String())
//	})
//
// Like every mutation it panics with ErrFrozen once the container is frozen.
func (c *Container) OnResolved(fn func(key Key, value any)) {
	if fn == nil {
		return
	}
	c.lockMutable()
	c.hooks = append(c.hooks, fn)
	c.mu.Unlock()
}

func (c *Container) fireResolved(key Key, value any) {
	var hooks []func(Key, any)
	if c.frozen.Load() {
		hooks = c.hooks
	} else {
		c.mu.RLock()
		hooks = c.hooks
		c.mu.RUnlock()
	}
	for _, h := range hooks {
		h(key, value)
	}
}
