package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

// ── ScopedProvider ────────────────────────────────────────────────────────────

func TestScopedProvider_Forms(t *testing.T) {
	t.Parallel()

	c := container.New()
	factory := container.NewFactory(func() int { return 1 })
	construct := container.NewConstruct(func(*container.Container) int { return 2 })

	assert.True(t, factory.IsFactory())
	assert.False(t, factory.IsConstruct())
	assert.True(t, construct.IsConstruct())
	assert.False(t, construct.IsFactory())

	e, ok := factory.CallFactory()
	require.True(t, ok)
	v, _ := container.Unerase[int](e)
	assert.Equal(t, 1, v)

	e, ok = construct.CallConstruct(c)
	require.True(t, ok)
	v, _ = container.Unerase[int](e)
	assert.Equal(t, 2, v)

	// the wrong form is reported, not run
	_, ok = factory.CallConstruct(c)
	assert.False(t, ok)
	_, ok = construct.CallFactory()
	assert.False(t, ok)

	assert.Equal(t, "Scoped::Factory(..)", factory.String())
	assert.Equal(t, "Scoped::Construct(..)", construct.String())
	assert.Equal(t, "Scoped::<empty>", container.ScopedProvider{}.String())
}

// ── SingletonProvider ─────────────────────────────────────────────────────────

func TestSingletonProvider_Instance(t *testing.T) {
	t.Parallel()

	s := container.NewInstance(5)
	assert.True(t, s.IsInstance())
	assert.False(t, s.IsLazy())
	assert.True(t, s.IsInitialized())
	assert.Equal(t, "Singleton::Instance(int)", s.String())

	peeked, ok := s.Peek()
	require.True(t, ok)
	got, ok := s.Get(nil)
	require.True(t, ok)

	a, _ := container.Unshare[int](peeked)
	b, _ := container.Unshare[int](got)
	assert.Same(t, a, b)
}

func TestSingletonProvider_Lazy(t *testing.T) {
	t.Parallel()

	c := container.New()
	var calls int
	s := container.NewLazy(func(*container.Container) string {
		calls++
		return "lazy"
	})

	assert.True(t, s.IsLazy())
	assert.False(t, s.IsInstance())
	assert.False(t, s.IsInitialized())
	assert.Equal(t, "Singleton::Lazy(..)", s.String())

	_, ok := s.Peek()
	assert.False(t, ok, "Peek must not build")
	assert.Zero(t, calls)

	sh, ok := s.Get(c)
	require.True(t, ok)
	v, ok := container.Unshare[string](sh)
	require.True(t, ok)
	assert.Equal(t, "lazy", *v)

	assert.True(t, s.IsInitialized())
	assert.Equal(t, "Singleton::Lazy(initialized)", s.String())

	_, _ = s.Get(c)
	assert.Equal(t, 1, calls)
}

// ── Provider ──────────────────────────────────────────────────────────────────

func TestProvider_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		provider  container.Provider
		kind      container.ProviderKind
		rendering string
	}{
		{"factory", container.ScopedOf(func() int { return 1 }), container.KindScoped, "Provider::Scoped::Factory(..)"},
		{"construct", container.ConstructOf(func(*container.Container) int { return 1 }), container.KindScoped, "Provider::Scoped::Construct(..)"},
		{"instance", container.SingletonOf(1), container.KindSingleton, "Provider::Singleton::Instance(int)"},
		{"lazy", container.LazySingletonOf(func(*container.Container) int { return 1 }), container.KindSingleton, "Provider::Singleton::Lazy(..)"},
		{"zero", container.Provider{}, 0, "Provider::<empty>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.provider.Kind())
			assert.Equal(t, tt.kind == container.KindScoped, tt.provider.IsScoped())
			assert.Equal(t, tt.kind == container.KindSingleton, tt.provider.IsSingleton())
			assert.Equal(t, tt.rendering, tt.provider.String())

			_, ok := tt.provider.Scoped()
			assert.Equal(t, tt.provider.IsScoped(), ok)
			_, ok = tt.provider.Singleton()
			assert.Equal(t, tt.provider.IsSingleton(), ok)
		})
	}
}

func TestProviderKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "scoped", container.KindScoped.String())
	assert.Equal(t, "singleton", container.KindSingleton.String())
	assert.Equal(t, "unknown", container.ProviderKind(0).String())
}

func TestScopedValue(t *testing.T) {
	t.Parallel()

	p := container.ScopedOf(func() string { return "x" })
	v, ok := container.ScopedValue[string](p)
	require.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = container.ScopedValue[int](p)
	assert.False(t, ok, "type mismatch")

	_, ok = container.ScopedValue[int](container.SingletonOf(1))
	assert.False(t, ok, "singleton")

	_, ok = container.ScopedValue[int](container.ConstructOf(func(*container.Container) int { return 1 }))
	assert.False(t, ok, "construct needs a container")
}

func TestConstructValue(t *testing.T) {
	t.Parallel()

	c := container.New()
	container.AddSingletonNamed(c, "base", 40)

	p := container.ConstructOf(func(c *container.Container) int {
		return *container.MustGetSingletonNamed[int](c, "base") + 2
	})
	v, ok := container.ConstructValue[int](p, c)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = container.ConstructValue[int](container.ScopedOf(func() int { return 1 }), c)
	assert.False(t, ok)
}

func TestSingletonValue_NeverBuilds(t *testing.T) {
	t.Parallel()

	c := container.New()
	var calls int
	p := container.LazySingletonOf(func(*container.Container) int {
		calls++
		return 7
	})
	alias := p

	_, ok := container.SingletonValue[int](p)
	assert.False(t, ok)
	assert.Zero(t, calls)

	v, ok := container.SingletonValueWith[int](p, c)
	require.True(t, ok)
	assert.Equal(t, 7, *v)

	// copies of a provider share the lazy cell
	w, ok := container.SingletonValue[int](alias)
	require.True(t, ok)
	assert.Same(t, v, w)
	assert.Equal(t, 1, calls)

	_, ok = container.SingletonValue[string](p)
	assert.False(t, ok)
	_, ok = container.SingletonValueWith[int](container.ScopedOf(func() int { return 1 }), c)
	assert.False(t, ok)
}
