package container_test

import (
	"bytes"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/log"
)

func TestBootstrapState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "uninitialized", container.StateUninitialized.String())
	assert.Equal(t, "initializing", container.StateInitializing.String())
	assert.Equal(t, "initialized", container.StateInitialized.String())
	assert.Equal(t, "unknown", container.BootstrapState(42).String())
}

func TestBootstrap_Initialize(t *testing.T) {
	t.Parallel()

	b := container.NewBootstrap()
	assert.Equal(t, container.StateUninitialized, b.State())

	_, ok := b.Container()
	assert.False(t, ok)
	assert.PanicsWithError(t, container.ErrNotInitialized.Error(), func() { b.MustContainer() })

	err := b.Initialize(func(c *container.Container) {
		container.AddScoped(c, func() string { return "Hello World" })
		container.AddSingletonNamed(c, "n", 5)
	})
	require.NoError(t, err)
	assert.Equal(t, container.StateInitialized, b.State())

	c := b.MustContainer()
	assert.True(t, c.IsFrozen())
	assert.Equal(t, 2, c.Len())

	s, ok := container.GetScoped[string](c)
	require.True(t, ok)
	assert.Equal(t, "Hello World", s)

	assert.PanicsWithError(t, container.ErrFrozen.Error(), func() {
		container.AddSingleton(c, 1)
	})
}

func TestBootstrap_SecondInitializeFails(t *testing.T) {
	t.Parallel()

	b := container.NewBootstrap()
	require.NoError(t, b.Initialize(nil))

	var ran bool
	err := b.Initialize(func(*container.Container) { ran = true })
	assert.ErrorIs(t, err, container.ErrAlreadyInitialized)
	assert.False(t, ran)

	c, ok := b.Container()
	require.True(t, ok)
	assert.True(t, c.IsEmpty())
}

func TestBootstrap_SingleWinner(t *testing.T) {
	t.Parallel()

	const goroutines = 32
	b := container.NewBootstrap()

	var (
		setups atomic.Int32
		wins   atomic.Int32
		wg     sync.WaitGroup
		start  = make(chan struct{})
		errs   = make([]error, goroutines)
	)
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = b.Initialize(func(c *container.Container) {
				setups.Add(1)
				time.Sleep(5 * time.Millisecond)
				container.AddSingletonNamed(c, "winner", i)
			})
			if errs[i] == nil {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), setups.Load())
	assert.Equal(t, int32(1), wins.Load())
	for _, err := range errs {
		if err != nil {
			assert.True(t,
				errors.Is(err, container.ErrInitializing) || errors.Is(err, container.ErrAlreadyInitialized),
				"unexpected error %v", err)
		}
	}

	c := b.MustContainer()
	_, ok := container.GetSingletonNamed[int](c, "winner")
	assert.True(t, ok)
}

func TestBootstrap_LoserWaitsThenReportsInitializing(t *testing.T) {
	t.Parallel()

	b := container.NewBootstrap()
	entered := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = b.Initialize(func(c *container.Container) {
			close(entered)
			<-release
			container.AddScoped(c, func() int { return 1 })
		})
	}()
	<-entered
	assert.Equal(t, container.StateInitializing, b.State())

	done := make(chan error)
	go func() { done <- b.Initialize(nil) }()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("loser returned while setup was still running")
	default:
	}

	close(release)
	assert.ErrorIs(t, <-done, container.ErrInitializing)

	c, ok := b.Container()
	require.True(t, ok)
	assert.True(t, c.Contains(container.KeyOf[int]()))
}

func TestBootstrap_PanicRollsBack(t *testing.T) {
	t.Parallel()

	b := container.NewBootstrap()
	assert.PanicsWithValue(t, "setup failed", func() {
		_ = b.Initialize(func(*container.Container) { panic("setup failed") })
	})
	assert.Equal(t, container.StateUninitialized, b.State())
	_, ok := b.Container()
	assert.False(t, ok)

	require.NoError(t, b.Initialize(func(c *container.Container) {
		container.AddSingleton(c, "recovered")
	}))
	s, ok := container.GetSingleton[string](b.MustContainer())
	require.True(t, ok)
	assert.Equal(t, "recovered", *s)
}

func TestBootstrap_InitializeWith(t *testing.T) {
	t.Parallel()

	b := container.NewBootstrap()
	booting := &bootingProvider{}
	require.NoError(t, b.InitializeWith(booting, &greetingProvider{}))

	assert.True(t, booting.bootCalled)
	assert.Equal(t, "hello", booting.bootSaw)

	g, ok := container.GetSingleton[*greeter](b.MustContainer())
	require.True(t, ok)
	assert.Equal(t, "hello", (*g).message)
}

func TestBootstrap_Logging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	b := container.NewBootstrap()
	b.SetLogger(log.New(&buf, log.LevelInfo, "text"))

	require.NoError(t, b.Initialize(func(c *container.Container) {
		container.AddSingleton(c, 1)
	}))

	out := buf.String()
	assert.Contains(t, out, "container initialized")
	assert.Contains(t, out, "component=bootstrap")
	assert.Contains(t, out, "count=1")
}

// The process-wide Bootstrap is shared by the whole package; only this test
// touches it.
func TestGlobal(t *testing.T) {
	require.Same(t, container.Global(), container.Global())

	err := container.InitGlobal(func(c *container.Container) {
		container.AddScoped(c, func() string { return "Hello World" })
	})
	require.NoError(t, err)

	c, ok := container.GlobalContainer()
	require.True(t, ok)
	assert.Same(t, c, container.MustGlobal())

	s, ok := container.GetScoped[string](container.MustGlobal())
	require.True(t, ok)
	assert.Equal(t, "Hello World", s)

	assert.ErrorIs(t, container.InitGlobal(nil), container.ErrAlreadyInitialized)
}
