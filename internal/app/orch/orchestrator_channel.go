package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/core"
	"github.com/forexorbit/academy-calls/internal/domain"
)

func (o *Orchestrator) Join(sid core.SessionID, id domain.ChannelID) bool {
	prevID, _, ok := o.Registry.ChannelOf(sid)
	if ok {
		o.KickBySID(sid)
		log.Info().Str("sid", string(sid)).Str("from_channel", string(prevID)).Msg("kicked from channel")
	}
	channel, ok := o.Channels.Get(id)
	if !ok {
		return false
	}
	session, ok := o.Registry.GetSession(sid)
	if !ok {
		return false
	}
	channel.AddParticipant(sid, session)
	o.Registry.UpdateChannel(sid, id)
	log.Info().Str("sid", string(sid)).Str("channel", string(id)).Msg("added to channel")
	return true
}

func (o *Orchestrator) KickBySID(sid core.SessionID) {
	o.cleanupMedia(sid)
	o.cleanupMembership(sid)
}

func (o *Orchestrator) OnSignalDisconnect(sid core.SessionID) {
	o.KickBySID(sid)
	o.Registry.Cancel(sid)
	o.Registry.Unbind(sid)
}

func (o *Orchestrator) cleanupMembership(sid core.SessionID) {
	chanID, _, ok := o.Registry.ChannelOf(sid)
	if !ok {
		return
	}
	if channel, ok := o.Channels.Get(chanID); ok {
		channel.RemoveParticipant(sid)
	}
	o.Registry.RemoveChannel(sid)
}

func (o *Orchestrator) EvictChannel(id domain.ChannelID) {
	for _, snap := range o.Registry.MembersOfChannel(id) {
		o.KickBySID(snap.SID)
	}
	o.Channels.Stop(id)
}
