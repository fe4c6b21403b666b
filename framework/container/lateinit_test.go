package container_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

func TestLateInit_BuildsOnFirstAccess(t *testing.T) {
	t.Parallel()

	var calls int
	cell := container.NewLateInit(func(n int) string {
		calls++
		return "built"
	})

	assert.False(t, cell.IsInitialized())
	_, ok := cell.Get()
	assert.False(t, ok)
	assert.Zero(t, calls, "constructor must not run before first access")

	v := cell.GetOrInit(1)
	assert.Equal(t, "built", *v)
	assert.True(t, cell.IsInitialized())

	again := cell.GetOrInit(2)
	assert.Same(t, v, again)
	assert.Equal(t, 1, calls)

	got, ok := cell.Get()
	require.True(t, ok)
	assert.Same(t, v, got)
}

func TestLateInit_FirstArgumentWins(t *testing.T) {
	t.Parallel()

	cell := container.NewLateInit(func(n int) int { return n * 10 })
	assert.Equal(t, 30, *cell.GetOrInit(3))
	assert.Equal(t, 30, *cell.GetOrInit(4))
}

func TestLateInit_ConcurrentAtMostOnce(t *testing.T) {
	t.Parallel()

	const goroutines = 64
	var calls atomic.Int32
	cell := container.NewLateInit(func(_ struct{}) []int {
		calls.Add(1)
		return []int{1, 2, 3}
	})

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		got   = make([]*[]int, goroutines)
	)
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			got[i] = cell.GetOrInit(struct{}{})
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, p := range got {
		assert.Same(t, got[0], p)
	}
}

func TestLateInit_PanicPoisons(t *testing.T) {
	t.Parallel()

	cell := container.NewLateInit(func(int) int { panic("boom") })

	assert.PanicsWithValue(t, "boom", func() { cell.GetOrInit(0) })
	assert.True(t, cell.IsPoisoned())
	assert.False(t, cell.IsInitialized())

	assert.PanicsWithError(t, container.ErrPoisoned.Error(), func() { cell.GetOrInit(0) })
	_, ok := cell.Get()
	assert.False(t, ok)
}

func TestLateInit_NilConstructor(t *testing.T) {
	t.Parallel()

	cell := container.NewLateInit[int, int](nil)
	assert.PanicsWithError(t, container.ErrPoisoned.Error(), func() { cell.GetOrInit(0) })
	assert.True(t, cell.IsPoisoned())
}
