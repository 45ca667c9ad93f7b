package app

import "github.com/forexorbit/academy-calls/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	MarkSlow
	KickParticipant
	DropFrame
)

type Policy interface {
	OnBackPressure(channel core.ChannelService, participant core.ParticipantSession) BackpressureAction
}

// SimplePolicy kicks any participant that cannot keep up. A consultation
// call has two parties; a stalled one is better reconnected than drowned.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(channel core.ChannelService, participant core.ParticipantSession) BackpressureAction {
	return KickParticipant
}
