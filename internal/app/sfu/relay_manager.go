package sfu

import (
	"context"
	"sync"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/core"
)

// relayKey identifies one published track: a publisher can hold an audio
// and a video relay at once.
type relayKey struct {
	sid  core.SessionID
	kind webrtc.RTPCodecType
}

type RelayManager struct {
	mu     sync.RWMutex
	relays map[relayKey]*Relay
}

func NewRelayManager() *RelayManager {
	return &RelayManager{
		relays: make(map[relayKey]*Relay),
	}
}

// StartRelay creates a new Relay for the given publisher track and starts its loop.
func (m *RelayManager) StartRelay(ctx context.Context, sid core.SessionID, track *webrtc.TrackRemote) {
	logger := log.With().
		Str("module", "relay").
		Str("sid", string(sid)).
		Str("kind", track.Kind().String()).
		Logger()

	relayCtx, cancel := context.WithCancel(ctx)
	relay := NewRelay(track, cancel)
	key := relayKey{sid: sid, kind: track.Kind()}

	m.mu.Lock()
	if old, ok := m.relays[key]; ok {
		logger.Info().Msg("replacing existing relay for sid")
		old.retireAll()
		if old.cancel != nil {
			old.cancel()
		}
	}
	m.relays[key] = relay
	m.mu.Unlock()

	logger.Info().Msg("starting relay loop")

	go relay.loop(relayCtx, sid, &logger)
}

// Subscribe bridges srcSID's published track into dstSID's peer connection.
// The out track carries the publisher's session id as its stream id so the
// receiving client can attribute it to a participant.
func (m *RelayManager) Subscribe(srcSID, dstSID core.SessionID, mc core.MediaConnection, track *webrtc.TrackRemote) {
	local, err := webrtc.NewTrackLocalStaticRTP(track.Codec().RTPCodecCapability, track.ID(), string(srcSID))
	if err != nil {
		log.Error().Err(err).Str("module", "relay").Str("src", string(srcSID)).Str("dst", string(dstSID)).Msg("new local track")
		return
	}
	if _, err := mc.AddLocalTrack(local); err != nil {
		log.Error().Err(err).Str("module", "relay").Str("src", string(srcSID)).Str("dst", string(dstSID)).Msg("add local track")
		return
	}
	m.AddSubscriber(srcSID, dstSID, track.Kind(), local)
}

// AddSubscriber attaches a leg to the relay of srcSID for dstSID.
func (m *RelayManager) AddSubscriber(srcSID, dstSID core.SessionID, kind webrtc.RTPCodecType, localTrack *webrtc.TrackLocalStaticRTP) {
	m.mu.RLock()
	relay, ok := m.relays[relayKey{sid: srcSID, kind: kind}]
	m.mu.RUnlock()
	if !ok {
		return
	}
	relay.AddLeg(dstSID, NewLeg(localTrack))
}

// MarkSubscriberDelete retires dstSID's legs on every relay of srcSID.
func (m *RelayManager) MarkSubscriberDelete(srcSID, dstSID core.SessionID) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for key, relay := range m.relays {
		if key.sid != srcSID {
			continue
		}
		relay.mu.RLock()
		leg, ok := relay.legs[dstSID]
		relay.mu.RUnlock()
		if ok {
			leg.Retire()
		}
	}
}

// SetPublisherMuted pauses or resumes forwarding of srcSID's track of the
// given kind to every subscriber.
func (m *RelayManager) SetPublisherMuted(srcSID core.SessionID, kind webrtc.RTPCodecType, muted bool) {
	m.mu.RLock()
	relay, ok := m.relays[relayKey{sid: srcSID, kind: kind}]
	m.mu.RUnlock()
	if !ok {
		return
	}
	relay.mu.RLock()
	defer relay.mu.RUnlock()
	for _, leg := range relay.legs {
		if muted {
			leg.Pause()
		} else {
			leg.Resume()
		}
	}
}

// StopRelays stops all relays of a publisher and removes them from the manager.
func (m *RelayManager) StopRelays(srcSID core.SessionID) {
	m.mu.Lock()
	var stopped []*Relay
	for key, relay := range m.relays {
		if key.sid == srcSID {
			stopped = append(stopped, relay)
			delete(m.relays, key)
		}
	}
	m.mu.Unlock()
	for _, relay := range stopped {
		relay.retireAll()
		if relay.cancel != nil {
			relay.cancel()
		}
	}
}

// SrcTracks returns the source tracks currently published by sid.
func (m *RelayManager) SrcTracks(sid core.SessionID) []*webrtc.TrackRemote {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*webrtc.TrackRemote
	for key, relay := range m.relays {
		if key.sid == sid {
			out = append(out, relay.Src)
		}
	}
	return out
}

// HasRelay reports whether sid currently publishes any track.
func (m *RelayManager) HasRelay(sid core.SessionID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for key := range m.relays {
		if key.sid == sid {
			return true
		}
	}
	return false
}
