package domain

// Participant represents a user's presence meta in a channel.
// No transport or lifecycle logic here.
type Participant struct {
	User     *User
	Muted    bool
	VideoOff bool
}

// NewParticipant avoids raw literals in adapters and keeps construction obvious.
func NewParticipant(user *User) *Participant {
	return &Participant{User: user}
}
