package orch

import (
	"context"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/core"
)

// MediaHooks lets the signal layer announce publish lifecycle on the
// wire without owning the media callback wiring.
type MediaHooks struct {
	OnPublished   func(kind, trackID string)
	OnUnpublished func(kind string)
}

func (o *Orchestrator) BindMediaHandlers(mc core.MediaConnection, sid core.SessionID, hooks MediaHooks) {
	mc.OnTrack(func(trackCtx context.Context, track *webrtc.TrackRemote, receiver *webrtc.RTPReceiver) {
		o.OnTrack(trackCtx, sid, track)
		if hooks.OnPublished != nil {
			hooks.OnPublished(track.Kind().String(), track.ID())
		}
	})
	mc.OnClosed(func() {
		// Snapshot the published kinds before cleanup tears the relays down.
		var kinds []string
		if o.Relays != nil {
			for _, src := range o.Relays.SrcTracks(sid) {
				kinds = append(kinds, src.Kind().String())
			}
		}
		o.OnMediaDisconnect(sid)
		if hooks.OnUnpublished != nil {
			for _, kind := range kinds {
				hooks.OnUnpublished(kind)
			}
		}
	})
}

func (o *Orchestrator) OnMediaDisconnect(sid core.SessionID) {
	o.cleanupMedia(sid)
}

func (o *Orchestrator) cleanupMedia(sid core.SessionID) {
	if o.Relays != nil {
		o.Relays.StopRelays(sid)

		chanID, _, ok := o.Registry.ChannelOf(sid)
		if ok {
			for _, snap := range o.Registry.MembersOfChannel(chanID) {
				o.Relays.MarkSubscriberDelete(snap.SID, sid)
			}
		}
	}

	if sess, ok := o.Registry.GetSession(sid); ok {
		if mc := sess.Media(); mc != nil {
			mc.Close()
		}
	}
}

// OnTrack is called when a new published media track appears for a given session.
func (o *Orchestrator) OnTrack(ctx context.Context, sid core.SessionID, track *webrtc.TrackRemote) {
	if o.Relays == nil {
		return
	}
	if sess, ok := o.Registry.GetSession(sid); !ok || sess.Media() == nil {
		return
	}
	o.Relays.StartRelay(ctx, sid, track)

	chanID, _, ok := o.Registry.ChannelOf(sid)
	if !ok {
		log.Info().
			Str("module", "sfu").
			Str("sid", string(sid)).
			Msg("OnTrack: no channel for sid")
		return
	}

	// Subscribe all existing participants in the channel to this publisher.
	for _, snap := range o.Registry.MembersOfChannel(chanID) {
		if snap.SID == sid {
			continue
		}
		pc := snap.Session.Media()
		if pc == nil {
			continue
		}
		o.Relays.Subscribe(sid, snap.SID, pc, track)
	}
}

// OnMediaReady is called when a MediaConnection is attached to the session
// (offer/answer done). It subscribes this participant to all tracks
// already published in the same channel.
func (o *Orchestrator) OnMediaReady(sid core.SessionID) {
	if o.Relays == nil {
		return
	}
	chanID, _, ok := o.Registry.ChannelOf(sid)
	if !ok {
		return
	}

	sess, ok := o.Registry.GetSession(sid)
	if !ok {
		return
	}
	mc := sess.Media()
	if mc == nil {
		return
	}

	for _, snap := range o.Registry.MembersOfChannel(chanID) {
		if snap.SID == sid {
			continue
		}
		for _, srcTrack := range o.Relays.SrcTracks(snap.SID) {
			o.Relays.Subscribe(snap.SID, sid, mc, srcTrack)
		}
	}
}

// SetTrackEnabled pauses or resumes relaying of sid's published track of
// the given kind, and mirrors the flag on the participant meta. It
// reports whether the flip was applied: participants that publish
// nothing cannot flip track state.
func (o *Orchestrator) SetTrackEnabled(sid core.SessionID, kind webrtc.RTPCodecType, enabled bool) bool {
	if o.Relays == nil || !o.Relays.HasRelay(sid) {
		return false
	}
	o.Relays.SetPublisherMuted(sid, kind, !enabled)
	if sess, ok := o.Registry.GetSession(sid); ok {
		switch kind {
		case webrtc.RTPCodecTypeAudio:
			sess.Meta().Muted = !enabled
		case webrtc.RTPCodecTypeVideo:
			sess.Meta().VideoOff = !enabled
		}
	}
	return true
}
