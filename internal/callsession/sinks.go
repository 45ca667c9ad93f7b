package callsession

import (
	"context"
	"sync"
)

// Surface identifiers the hosting UI uses when attaching sinks.
const (
	SurfaceLocal  = "local-player"
	SurfaceRemote = "remote-player"
)

// Sink is a display surface for a video track.
type Sink interface {
	Render(track RemoteTrack)
	Clear()
}

// SinkRegistry rendezvouses track arrival with surface mounting. Mounting
// may race session start, so binding waits on the surface's own attach
// instead of polling for it.
type SinkRegistry struct {
	mu      sync.Mutex
	sinks   map[string]Sink
	waiters map[string][]chan Sink
}

func NewSinkRegistry() *SinkRegistry {
	return &SinkRegistry{
		sinks:   make(map[string]Sink),
		waiters: make(map[string][]chan Sink),
	}
}

// Attach registers a sink and releases everyone awaiting it.
func (r *SinkRegistry) Attach(name string, s Sink) {
	r.mu.Lock()
	r.sinks[name] = s
	pending := r.waiters[name]
	delete(r.waiters, name)
	r.mu.Unlock()
	for _, ch := range pending {
		ch <- s
	}
}

func (r *SinkRegistry) Detach(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sinks, name)
}

// Await returns the sink registered under name, blocking until it is
// attached or ctx ends.
func (r *SinkRegistry) Await(ctx context.Context, name string) (Sink, error) {
	r.mu.Lock()
	if s, ok := r.sinks[name]; ok {
		r.mu.Unlock()
		return s, nil
	}
	ch := make(chan Sink, 1)
	r.waiters[name] = append(r.waiters[name], ch)
	r.mu.Unlock()

	select {
	case s := <-ch:
		return s, nil
	case <-ctx.Done():
		r.dropWaiter(name, ch)
		return nil, ctx.Err()
	}
}

func (r *SinkRegistry) dropWaiter(name string, ch chan Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pending := r.waiters[name]
	for i, w := range pending {
		if w == ch {
			r.waiters[name] = append(pending[:i], pending[i+1:]...)
			return
		}
	}
}
