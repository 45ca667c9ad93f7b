package domain

import "time"

// CallKind selects which media kinds a consultation call carries.
type CallKind string

const (
	CallVoice CallKind = "voice"
	CallVideo CallKind = "video"
)

// ConsultationStatus follows the request lifecycle:
// pending -> active -> completed, or pending -> rejected.
type ConsultationStatus string

const (
	ConsultationPending   ConsultationStatus = "pending"
	ConsultationActive    ConsultationStatus = "active"
	ConsultationCompleted ConsultationStatus = "completed"
	ConsultationRejected  ConsultationStatus = "rejected"
)

// Consultation is a student's request for a call with an expert.
// The channel is allocated when the expert accepts.
type Consultation struct {
	ID        string             `db:"id" json:"id"`
	StudentID UserID             `db:"student_id" json:"student_id"`
	ExpertID  UserID             `db:"expert_id" json:"expert_id"`
	Topic     string             `db:"topic" json:"topic"`
	Kind      CallKind           `db:"kind" json:"kind"`
	Channel   ChannelName        `db:"channel" json:"channel,omitempty"`
	Status    ConsultationStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}
