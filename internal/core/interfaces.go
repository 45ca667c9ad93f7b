package core

import "github.com/forexorbit/academy-calls/internal/domain"

// Frame is a raw binary payload (e.g., a serialized signal message).
type Frame []byte

type SessionID string

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// ParticipantSession binds domain.Participant and its transport endpoints.
// This is what a channel stores and fans out to.
type ParticipantSession interface {
	Meta() *domain.Participant
	Signal() SignalConnection
	Media() MediaConnection
	UpdateSignal(SignalConnection) ParticipantSession
	UpdateMedia(MediaConnection) ParticipantSession
}

// PublishResult reports delivery stats/backpressure to the orchestrator.
type PublishResult struct {
	SentTo  int
	Dropped []ParticipantSession
}

// ParticipantDTO is a read-only view for APIs (no transport fields).
type ParticipantDTO struct {
	ID       domain.UserID `json:"id"`
	Username string        `json:"username"`
	Role     domain.Role   `json:"role,omitempty"`
	Muted    bool          `json:"muted"`
	VideoOff bool          `json:"video_off"`
}

// ChannelService is the core-facing API of a channel.
// It owns the membership set but never touches transport resources.
type ChannelService interface {
	Channel() *domain.Channel
	ParticipantCount() int
	ParticipantsSnapshot() []ParticipantDTO

	AddParticipant(sid SessionID, ps ParticipantSession)
	RemoveParticipant(sid SessionID)
	Broadcast(from SessionID, data Frame) PublishResult
}

type ChannelInfo struct {
	ID               domain.ChannelID   `json:"id"`
	Name             domain.ChannelName `json:"name"`
	ParticipantCount int                `json:"participant_count"`
}

type ChannelManager interface {
	Create(name domain.ChannelName) ChannelService
	Get(id domain.ChannelID) (ChannelService, bool)
	GetByName(name domain.ChannelName) (ChannelService, bool)
	List() []ChannelInfo
	Stop(id domain.ChannelID)
}
