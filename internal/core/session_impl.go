package core

import "github.com/forexorbit/academy-calls/internal/domain"

// participantSession implements ParticipantSession by pairing meta + transports.
type participantSession struct {
	meta   *domain.Participant
	signal SignalConnection
	media  MediaConnection
}

func NewParticipantSession(meta *domain.Participant) ParticipantSession {
	return &participantSession{meta: meta}
}

func (p *participantSession) Meta() *domain.Participant { return p.meta }
func (p *participantSession) Signal() SignalConnection  { return p.signal }
func (p *participantSession) Media() MediaConnection    { return p.media }

func (p *participantSession) UpdateSignal(sc SignalConnection) ParticipantSession {
	p.signal = sc
	return p
}

func (p *participantSession) UpdateMedia(mc MediaConnection) ParticipantSession {
	p.media = mc
	return p
}
