package callsession

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAwaitReturnsAlreadyAttachedSink(t *testing.T) {
	r := NewSinkRegistry()
	sink := &recordingSink{}
	r.Attach(SurfaceLocal, sink)

	got, err := r.Await(context.Background(), SurfaceLocal)
	require.NoError(t, err)
	require.Same(t, sink, got.(*recordingSink))
}

func TestAwaitBlocksUntilAttach(t *testing.T) {
	r := NewSinkRegistry()
	sink := &recordingSink{}

	type res struct {
		s   Sink
		err error
	}
	done := make(chan res, 1)
	go func() {
		s, err := r.Await(context.Background(), SurfaceRemote)
		done <- res{s: s, err: err}
	}()

	select {
	case <-done:
		t.Fatal("await resolved before attach")
	case <-time.After(20 * time.Millisecond):
	}

	r.Attach(SurfaceRemote, sink)

	select {
	case got := <-done:
		require.NoError(t, got.err)
		require.Same(t, sink, got.s.(*recordingSink))
	case <-time.After(time.Second):
		t.Fatal("await never resolved")
	}
}

func TestAwaitHonorsContext(t *testing.T) {
	r := NewSinkRegistry()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := r.Await(ctx, SurfaceRemote)
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("await never resolved")
	}

	// A later attach must not block on the abandoned waiter.
	r.Attach(SurfaceRemote, &recordingSink{})
}

func TestAttachReleasesAllWaiters(t *testing.T) {
	r := NewSinkRegistry()

	const n = 4
	done := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := r.Await(context.Background(), SurfaceRemote)
			done <- err
		}()
	}

	// Let the waiters park before attaching.
	time.Sleep(20 * time.Millisecond)
	r.Attach(SurfaceRemote, &recordingSink{})

	for i := 0; i < n; i++ {
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("waiter never released")
		}
	}
}

func TestDetachForcesNextAwaitToBlock(t *testing.T) {
	r := NewSinkRegistry()
	r.Attach(SurfaceLocal, &recordingSink{})
	r.Detach(SurfaceLocal)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.Await(ctx, SurfaceLocal)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
