package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/testimony/pkg/broadcast"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receive[T any](t *testing.T, sub broadcast.Subscriber[T]) T {
	t.Helper()
	select {
	case msg, ok := <-sub.C():
		require.True(t, ok, "subscription closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	var zero T
	return zero
}

func TestMemory_FanOut(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemory[string](4)
	defer b.Close()

	s1 := b.Subscribe(context.Background())
	s2 := b.Subscribe(context.Background())
	assert.Equal(t, 2, b.Len())

	require.NoError(t, b.Publish("added"))
	assert.Equal(t, "added", receive(t, s1))
	assert.Equal(t, "added", receive(t, s2))
}

func TestMemory_DropsOldestWhenFull(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemory[int](2)
	defer b.Close()

	sub := b.Subscribe(context.Background())
	for i := 1; i <= 5; i++ {
		require.NoError(t, b.Publish(i))
	}

	assert.Equal(t, 4, receive(t, sub))
	assert.Equal(t, 5, receive(t, sub))
}

func TestMemory_ContextCancel(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemory[int](1)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-sub.C():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after cancel")
	}
	assert.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemory_SubscriberClose(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemory[int](1)
	defer b.Close()

	sub := b.Subscribe(context.Background())
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
	assert.Zero(t, b.Len())

	require.NoError(t, b.Publish(1))
	_, ok := <-sub.C()
	assert.False(t, ok)
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemory[int](1)
	sub := b.Subscribe(context.Background())

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, ok := <-sub.C()
	assert.False(t, ok)
	assert.ErrorIs(t, b.Publish(1), broadcast.ErrClosed)

	late := b.Subscribe(context.Background())
	_, ok = <-late.C()
	assert.False(t, ok)
}

func TestMemory_Concurrent(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemory[int](8)
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	for range 4 {
		sub := b.Subscribe(ctx)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range sub.C() {
			}
		}()
	}
	for i := range 100 {
		_ = b.Publish(i)
	}
	cancel()
	wg.Wait()
	require.NoError(t, b.Close())
}
