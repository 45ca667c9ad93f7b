package callsession

import (
	"github.com/rs/zerolog/log"
)

// transportEvents feeds transport callbacks into the session. Callbacks
// are applied in delivery order; the session never reorders them.
type transportEvents struct {
	s *Session
}

func (e *transportEvents) OnTrackPublished(participant string, track RemoteTrack) {
	s := e.s
	s.mu.Lock()
	if s.state == StateEnded {
		s.mu.Unlock()
		return
	}
	rp, ok := s.remotes[participant]
	if !ok {
		rp = &RemoteParticipant{ID: participant}
		s.remotes[participant] = rp
	}
	switch track.Kind() {
	case KindAudio:
		rp.Audio = track
	case KindVideo:
		rp.Video = track
	}
	snapshot := s.participantsLocked()
	lifeCtx := s.lifeCtx
	s.mu.Unlock()

	log.Info().Str("module", "callsession").Str("participant", participant).Str("kind", string(track.Kind())).Msg("remote track published")
	if track.Kind() == KindVideo && lifeCtx != nil {
		go func() {
			sink, err := s.sinks.Await(lifeCtx, SurfaceRemote)
			if err != nil {
				return
			}
			sink.Render(track)
		}()
	}
	s.notifyParticipants(snapshot)
}

func (e *transportEvents) OnTrackUnpublished(participant string, kind TrackKind) {
	s := e.s
	s.mu.Lock()
	rp, ok := s.remotes[participant]
	if !ok {
		s.mu.Unlock()
		return
	}
	switch kind {
	case KindAudio:
		rp.Audio = nil
	case KindVideo:
		rp.Video = nil
	}
	// A participant entry exists only while it has at least one track.
	if rp.Audio == nil && rp.Video == nil {
		delete(s.remotes, participant)
	}
	snapshot := s.participantsLocked()
	s.mu.Unlock()

	log.Info().Str("module", "callsession").Str("participant", participant).Str("kind", string(kind)).Msg("remote track unpublished")
	if kind == KindVideo {
		s.clearRemoteSurface()
	}
	s.notifyParticipants(snapshot)
}

func (e *transportEvents) OnParticipantLeft(participant string) {
	s := e.s
	s.mu.Lock()
	rp, ok := s.remotes[participant]
	if !ok {
		s.mu.Unlock()
		return
	}
	hadVideo := rp.Video != nil
	delete(s.remotes, participant)
	snapshot := s.participantsLocked()
	s.mu.Unlock()

	log.Info().Str("module", "callsession").Str("participant", participant).Msg("participant left")
	if hadVideo {
		s.clearRemoteSurface()
	}
	s.notifyParticipants(snapshot)
}

func (e *transportEvents) OnDisconnected(err error) {
	s := e.s
	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	log.Warn().Err(err).Str("module", "callsession").Msg("transport disconnected")
	s.teardown()
	s.setState(StateError, Classify(err))
}

func (s *Session) clearRemoteSurface() {
	s.sinks.mu.Lock()
	sink, ok := s.sinks.sinks[SurfaceRemote]
	s.sinks.mu.Unlock()
	if ok {
		sink.Clear()
	}
}
