package orch

import (
	"github.com/forexorbit/academy-calls/internal/app"
	"github.com/forexorbit/academy-calls/internal/app/sfu"
	"github.com/forexorbit/academy-calls/internal/core"
)

// Orchestrator wires registry, channels and relays together. It is the
// only place that coordinates membership and media lifecycle.
type Orchestrator struct {
	Registry *app.Registry
	Channels core.ChannelManager
	Policy   app.Policy
	Relays   *sfu.RelayManager
}

func (o *Orchestrator) OnFrame(sid core.SessionID, data core.Frame) {
	chanID, _, ok := o.Registry.ChannelOf(sid)
	if !ok {
		return
	}
	channel, ok := o.Channels.Get(chanID)
	if !ok {
		return
	}

	res := channel.Broadcast(sid, data)
	if o.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(channel, slow) {
		case app.KickParticipant:
			for _, snap := range o.Registry.MembersOfChannel(chanID) {
				if snap.Session == slow {
					o.KickBySID(snap.SID)
					// Sever the signal pumps; the stalled client must reconnect.
					o.Registry.Cancel(snap.SID)
				}
			}
		case app.MarkSlow, app.DropFrame, app.NoAction:
		}
	}
}
