// ABOUTME: Tests for the in-process bus implementation.
// ABOUTME: Covers fan-out, unsubscribe, close semantics, and panic isolation.

package bus

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_DeliversToSubscriber(t *testing.T) {
	b := NewMemory(slog.Default())
	defer b.Close()

	received := make(chan []byte, 1)
	b.Subscribe("trips", func(_ context.Context, data []byte) {
		received <- data
	})

	require.NoError(t, b.Publish(context.Background(), "trips", []byte("hello")))

	select {
	case data := <-received:
		assert.Equal(t, []byte("hello"), data)
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestPublish_TopicIsolation(t *testing.T) {
	b := NewMemory(slog.Default())
	defer b.Close()

	var mu sync.Mutex
	var got []string
	b.Subscribe("a", func(_ context.Context, data []byte) {
		mu.Lock()
		got = append(got, "a:"+string(data))
		mu.Unlock()
	})

	require.NoError(t, b.Publish(context.Background(), "b", []byte("x")))
	require.NoError(t, b.Publish(context.Background(), "a", []byte("y")))
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a:y"}, got)
}

func TestPublish_NoSubscribersIsSilent(t *testing.T) {
	b := NewMemory(slog.Default())
	defer b.Close()

	assert.NoError(t, b.Publish(context.Background(), "nowhere", []byte("dropped")))
}

func TestSubscribe_UnsubscribeStopsDelivery(t *testing.T) {
	b := NewMemory(slog.Default())
	defer b.Close()

	var count sync.WaitGroup
	count.Add(1)
	calls := 0
	var mu sync.Mutex
	unsub := b.Subscribe("t", func(_ context.Context, _ []byte) {
		mu.Lock()
		calls++
		mu.Unlock()
		count.Done()
	})

	require.NoError(t, b.Publish(context.Background(), "t", nil))
	count.Wait()

	unsub()
	unsub() // second call is a no-op

	require.NoError(t, b.Publish(context.Background(), "t", nil))
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestClose_PublishReturnsErrClosed(t *testing.T) {
	b := NewMemory(slog.Default())
	b.Close()
	b.Close() // idempotent

	err := b.Publish(context.Background(), "t", nil)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestPublish_PanickingHandlerDoesNotAffectOthers(t *testing.T) {
	b := NewMemory(slog.Default())

	received := make(chan struct{}, 1)
	b.Subscribe("t", func(_ context.Context, _ []byte) {
		panic("boom")
	})
	b.Subscribe("t", func(_ context.Context, _ []byte) {
		received <- struct{}{}
	})

	require.NoError(t, b.Publish(context.Background(), "t", nil))

	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("second handler was not invoked")
	}
	b.Close()
}

func TestClose_WaitsForInFlightHandlers(t *testing.T) {
	b := NewMemory(slog.Default())

	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})
	b.Subscribe("bookings", func(_ context.Context, _ []byte) {
		close(started)
		<-release
		close(finished)
	})

	require.NoError(t, b.Publish(context.Background(), "bookings", []byte("{}")))
	<-started

	closed := make(chan struct{})
	go func() {
		b.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a handler was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return after handlers finished")
	}

	select {
	case <-finished:
	default:
		t.Fatal("handler did not run to completion before Close returned")
	}
}
