package sfu

import (
	"testing"

	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/require"
)

func newLocalTrack(t *testing.T, id string) *webrtc.TrackLocalStaticRTP {
	t.Helper()
	track, err := webrtc.NewTrackLocalStaticRTP(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus},
		id, "test",
	)
	require.NoError(t, err)
	return track
}

func TestLegStates(t *testing.T) {
	leg := NewLeg(newLocalTrack(t, "a1"))
	require.Equal(t, LegForwarding, leg.State())

	leg.Pause()
	require.Equal(t, LegPaused, leg.State())

	leg.Resume()
	require.Equal(t, LegForwarding, leg.State())

	leg.Retire()
	require.Equal(t, LegRetired, leg.State())
}

func TestRelayManagerSubscriberBookkeeping(t *testing.T) {
	m := NewRelayManager()
	require.False(t, m.HasRelay("pub"))
	require.Empty(t, m.SrcTracks("pub"))

	// Stops and retirements for unknown publishers are no-ops.
	m.StopRelays("pub")
	m.MarkSubscriberDelete("pub", "sub")
	m.SetPublisherMuted("pub", webrtc.RTPCodecTypeAudio, true)
}
