package domain

type (
	ChannelName string
	ChannelID   string
)

// Channel is a named real-time session that call participants join to
// exchange audio/video.
type Channel struct {
	ID   ChannelID
	Name ChannelName
}
