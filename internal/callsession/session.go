// Package callsession binds one real-time transport client to a
// channel/token pair: it publishes local media, tracks remote
// participants, and exposes a small operation set to the hosting UI
// while hiding transport-level detail.
package callsession

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/domain"
)

// DefaultStartTimeout bounds the whole join+publish sequence.
const DefaultStartTimeout = 30 * time.Second

const teardownTimeout = 5 * time.Second

type State string

const (
	StateInitializing State = "initializing"
	StateConnected    State = "connected"
	StateError        State = "error"
	StateEnded        State = "ended"
)

// RemoteParticipant is the session's read-only view of one remote
// endpoint. An entry exists only while the participant has at least one
// published track.
type RemoteParticipant struct {
	ID    string
	Audio RemoteTrack
	Video RemoteTrack
}

// Session is the call-session adapter. One instance owns one transport
// client and one local track set; create a new Session per call.
type Session struct {
	transport Transport
	devices   DeviceSource
	sinks     *SinkRegistry

	// StartTimeout may be lowered before Start; zero means the default.
	StartTimeout time.Duration

	// OnStateChange and OnParticipantsChange are set by the host before
	// Start and invoked without the session lock held.
	OnStateChange        func(state State, err error)
	OnParticipantsChange func([]RemoteParticipant)

	mu       sync.Mutex
	state    State
	desc     Descriptor
	audio    LocalTrack
	video    LocalTrack
	joined   bool
	starting bool
	cancel   context.CancelFunc // aborts an in-flight Start
	lifeCtx  context.Context    // bounds sink waits and other session work
	lifetime context.CancelFunc
	remotes  map[string]*RemoteParticipant
	lastErr  error
}

func NewSession(transport Transport, devices DeviceSource) *Session {
	s := &Session{
		transport:    transport,
		devices:      devices,
		sinks:        NewSinkRegistry(),
		StartTimeout: DefaultStartTimeout,
		state:        StateInitializing,
		remotes:      make(map[string]*RemoteParticipant),
	}
	transport.SetHandler(&transportEvents{s: s})
	return s
}

// Sinks exposes the registry the hosting UI attaches display surfaces to.
func (s *Session) Sinks() *SinkRegistry { return s.sinks }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the classified error of the last failed setup, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Start validates desc, acquires local media, joins the channel and
// publishes. It resolves once join and publish have both succeeded.
// Calling Start on a live session tears the previous call down first.
func (s *Session) Start(ctx context.Context, desc Descriptor) error {
	if err := desc.validate(); err != nil {
		s.setState(StateError, err)
		return err
	}

	s.mu.Lock()
	if s.starting || s.state == StateConnected {
		s.mu.Unlock()
		s.End()
		s.mu.Lock()
	}
	timeout := s.StartTimeout
	if timeout <= 0 {
		timeout = DefaultStartTimeout
	}
	lifeCtx, lifeCancel := context.WithCancel(context.Background())
	startCtx, startCancel := context.WithTimeout(ctx, timeout)
	s.state = StateInitializing
	s.lastErr = nil
	s.desc = desc
	s.starting = true
	s.cancel = startCancel
	s.lifeCtx = lifeCtx
	s.lifetime = lifeCancel
	s.remotes = make(map[string]*RemoteParticipant)
	s.mu.Unlock()
	defer startCancel()

	err := s.setup(startCtx, lifeCtx, desc)

	s.mu.Lock()
	s.starting = false
	s.cancel = nil
	ended := s.state == StateEnded
	s.mu.Unlock()

	if err != nil {
		s.cleanupAfterFailedStart()
		if ended || errors.Is(err, context.Canceled) {
			// End() (or the caller's context) won the race; nothing to surface.
			if !ended {
				s.setState(StateEnded, nil)
			}
			return context.Canceled
		}
		classified := Classify(err)
		s.setState(StateError, classified)
		return classified
	}
	if ended {
		// End() arrived between the last setup step and here.
		return context.Canceled
	}
	s.setState(StateConnected, nil)
	return nil
}

// setup runs the cancellable start sequence. Every await point checks
// startCtx so End() aborts it at the next step boundary.
func (s *Session) setup(startCtx, lifeCtx context.Context, desc Descriptor) error {
	if err := startCtx.Err(); err != nil {
		return err
	}

	audio, err := s.devices.AcquireAudio(startCtx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.audio = audio
	s.mu.Unlock()

	var video LocalTrack
	if desc.Kind == domain.CallVideo {
		if err := startCtx.Err(); err != nil {
			return err
		}
		video, err = s.devices.AcquireVideo(startCtx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.video = video
		s.mu.Unlock()
	}

	if err := startCtx.Err(); err != nil {
		return err
	}
	if err := s.transport.Join(startCtx, desc); err != nil {
		return err
	}
	s.mu.Lock()
	s.joined = true
	s.mu.Unlock()

	if err := startCtx.Err(); err != nil {
		return err
	}
	tracks := []LocalTrack{audio}
	if video != nil {
		tracks = append(tracks, video)
	}
	if err := s.transport.Publish(startCtx, tracks); err != nil {
		return err
	}

	if video != nil {
		go s.bindLocalPreview(lifeCtx, video)
	}
	return nil
}

func (s *Session) bindLocalPreview(ctx context.Context, track LocalTrack) {
	sink, err := s.sinks.Await(ctx, SurfaceLocal)
	if err != nil {
		return
	}
	sink.Render(localPreview{track: track})
}

// ToggleMute flips the local audio track's enabled flag and returns the
// resulting muted state. It is a no-op outside the connected state or
// when no audio track exists.
func (s *Session) ToggleMute() bool {
	return s.toggle(KindAudio)
}

// ToggleVideo flips the local video track's enabled flag and returns the
// resulting video-off state. On a voice-only call it is a no-op.
func (s *Session) ToggleVideo() bool {
	return s.toggle(KindVideo)
}

func (s *Session) toggle(kind TrackKind) bool {
	s.mu.Lock()
	track := s.audio
	if kind == KindVideo {
		track = s.video
	}
	if s.state != StateConnected || track == nil {
		s.mu.Unlock()
		return false
	}
	enabled := !track.Enabled()
	track.SetEnabled(enabled)
	s.mu.Unlock()

	if rep, ok := s.transport.(TrackStateReporter); ok {
		rep.ReportTrackState(kind, enabled)
	}
	return !enabled
}

// End stops and releases local tracks, leaves the channel and clears
// remote participant state. It is idempotent and safe to call while
// Start is still in flight; the in-flight Start is cancelled at its next
// step boundary.
func (s *Session) End() {
	s.mu.Lock()
	if s.state == StateEnded {
		s.mu.Unlock()
		return
	}
	s.state = StateEnded
	cancelStart := s.cancel
	s.mu.Unlock()

	if cancelStart != nil {
		cancelStart()
	}
	s.teardown()
	s.notifyState(StateEnded, nil)
}

// teardown releases everything exactly once per acquired resource.
// Cleanup failures are logged and otherwise ignored so a bad track stop
// never blocks the next session attempt.
func (s *Session) teardown() {
	s.mu.Lock()
	audio, video := s.audio, s.video
	joined := s.joined
	lifetime := s.lifetime
	s.audio, s.video = nil, nil
	s.joined = false
	s.lifeCtx = nil
	s.lifetime = nil
	s.remotes = make(map[string]*RemoteParticipant)
	s.mu.Unlock()

	if lifetime != nil {
		lifetime()
	}
	for _, t := range []LocalTrack{audio, video} {
		if t == nil {
			continue
		}
		if err := t.Close(); err != nil {
			log.Warn().Err(err).Str("module", "callsession").Str("kind", string(t.Kind())).Msg("local track close")
		}
	}
	if joined {
		ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
		defer cancel()
		if err := s.transport.Leave(ctx); err != nil {
			log.Warn().Err(err).Str("module", "callsession").Msg("channel leave")
		}
	}
}

func (s *Session) cleanupAfterFailedStart() {
	s.teardown()
}

// Participants returns a stable snapshot of remote participants that
// currently have at least one published track.
func (s *Session) Participants() []RemoteParticipant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.participantsLocked()
}

func (s *Session) participantsLocked() []RemoteParticipant {
	out := make([]RemoteParticipant, 0, len(s.remotes))
	for _, rp := range s.remotes {
		out = append(out, *rp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LocalTracks reports which local tracks exist, for the hosting UI.
func (s *Session) LocalTracks() (audio, video bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio != nil, s.video != nil
}

func (s *Session) setState(state State, err error) {
	s.mu.Lock()
	if s.state == StateEnded && state != StateEnded {
		// End() already won; do not resurrect the session.
		s.mu.Unlock()
		return
	}
	s.state = state
	s.lastErr = err
	s.mu.Unlock()
	s.notifyState(state, err)
}

func (s *Session) notifyState(state State, err error) {
	if s.OnStateChange != nil {
		s.OnStateChange(state, err)
	}
	if err != nil {
		log.Error().Err(err).Str("module", "callsession").Str("state", string(state)).Msg("session state")
	} else {
		log.Info().Str("module", "callsession").Str("state", string(state)).Msg("session state")
	}
}

func (s *Session) notifyParticipants(snapshot []RemoteParticipant) {
	if s.OnParticipantsChange != nil {
		s.OnParticipantsChange(snapshot)
	}
}

// localPreview adapts a local track to the Sink interface so the hosting
// UI renders its own camera through the same surface mechanism.
type localPreview struct {
	track LocalTrack
}

func (p localPreview) ID() string      { return "local" }
func (p localPreview) Kind() TrackKind { return p.track.Kind() }
