package sfu

import (
	"context"
	"maps"
	"sync"

	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"

	"github.com/forexorbit/academy-calls/internal/core"
)

// Relay fans one publisher's track out to the other call parties.
type Relay struct {
	Src *webrtc.TrackRemote

	mu   sync.RWMutex
	legs map[core.SessionID]*Leg

	cancel context.CancelFunc
}

func NewRelay(src *webrtc.TrackRemote, cancel context.CancelFunc) *Relay {
	return &Relay{
		Src:    src,
		legs:   make(map[core.SessionID]*Leg),
		cancel: cancel,
	}
}

// loop reads RTP packets from the source track and forwards them to all legs.
func (r *Relay) loop(ctx context.Context, _ core.SessionID, logger *zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("relay ctx done, retiring all legs")
			r.retireAll()
			return
		default:
		}
		pkt, _, err := r.Src.ReadRTP()
		if err != nil {
			logger.Error().Err(err).Msg("relay read RTP error, stopping")
			r.retireAll()
			return
		}
		r.forward(pkt, logger)
	}
}

func (r *Relay) forward(pkt *rtp.Packet, logger *zerolog.Logger) {
	snapshot := make(map[core.SessionID]*Leg, len(r.legs))
	r.mu.RLock()
	maps.Copy(snapshot, r.legs)
	r.mu.RUnlock()

	dirty := make([]core.SessionID, 0, len(snapshot))
	for dstSID, leg := range snapshot {
		switch leg.State() {
		case LegRetired:
			dirty = append(dirty, dstSID)
		case LegPaused:
		case LegForwarding:
			if err := leg.Out.WriteRTP(pkt); err != nil {
				logger.Error().
					Err(err).
					Str("dst_sid", string(dstSID)).
					Msg("relay write RTP error, retiring leg")
				leg.Retire()
				dirty = append(dirty, dstSID)
			}
		}
	}

	// Reaping is done outside the RLock.
	if len(dirty) > 0 {
		r.reapRetired(dirty)
	}
}

func (r *Relay) reapRetired(dirty []core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sid := range dirty {
		delete(r.legs, sid)
	}
}

func (r *Relay) retireAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, leg := range r.legs {
		leg.Retire()
	}
}

func (r *Relay) AddLeg(dst core.SessionID, leg *Leg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.legs[dst] = leg
}

// SetMuted flips the forwarding state of one subscriber leg.
func (r *Relay) SetMuted(dst core.SessionID, muted bool) {
	r.mu.RLock()
	leg, ok := r.legs[dst]
	r.mu.RUnlock()
	if !ok {
		return
	}
	if muted {
		leg.Pause()
	} else {
		leg.Resume()
	}
}
