package callsession

import (
	"context"
	"fmt"

	"github.com/forexorbit/academy-calls/internal/domain"
)

//go:generate mockgen -source=transport.go -destination=mocks/transport.go -package=mocks

type TrackKind string

const (
	KindAudio TrackKind = "audio"
	KindVideo TrackKind = "video"
)

// Descriptor names everything needed to join one channel once.
// It is immutable; reconnecting requires a fresh Descriptor.
type Descriptor struct {
	AppID         string
	Channel       string
	Token         string
	ParticipantID string
	Kind          domain.CallKind
}

func (d Descriptor) validate() error {
	var missing []string
	if d.AppID == "" {
		missing = append(missing, "app id")
	}
	if d.Channel == "" {
		missing = append(missing, "channel")
	}
	if d.Token == "" {
		missing = append(missing, "token")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrConfiguration, missing)
	}
	return nil
}

// Transport is the client side of the real-time engine. Implementations
// wrap setup errors with the taxonomy sentinels from errors.go.
type Transport interface {
	Join(ctx context.Context, desc Descriptor) error
	Publish(ctx context.Context, tracks []LocalTrack) error
	Leave(ctx context.Context) error
	SetHandler(TransportHandler)
}

// TransportHandler receives remote-side notifications in the order the
// transport emits them. The session never reorders or coalesces them.
type TransportHandler interface {
	OnTrackPublished(participant string, track RemoteTrack)
	OnTrackUnpublished(participant string, kind TrackKind)
	OnParticipantLeft(participant string)
	OnDisconnected(err error)
}

// TrackStateReporter is optionally implemented by transports that can tell
// the far end about local mute/video-off flips.
type TrackStateReporter interface {
	ReportTrackState(kind TrackKind, enabled bool)
}

// LocalTrack is a published media stream owned by the session.
type LocalTrack interface {
	Kind() TrackKind
	SetEnabled(bool)
	Enabled() bool
	Close() error
}

// RemoteTrack is a subscribed media stream owned by the transport.
type RemoteTrack interface {
	ID() string
	Kind() TrackKind
}

// DeviceSource acquires local capture tracks. Implementations wrap denied
// device access with ErrPermission.
type DeviceSource interface {
	AcquireAudio(ctx context.Context) (LocalTrack, error)
	AcquireVideo(ctx context.Context) (LocalTrack, error)
}
