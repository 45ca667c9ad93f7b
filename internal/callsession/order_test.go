package callsession_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/forexorbit/academy-calls/internal/callsession"
	"github.com/forexorbit/academy-calls/internal/callsession/mocks"
	"github.com/forexorbit/academy-calls/internal/domain"
)

// Start must acquire media, join and publish in that order, and End must
// leave exactly once.
func TestStartSequencesTransportCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	devices := mocks.NewMockDeviceSource(ctrl)
	audio := mocks.NewMockLocalTrack(ctrl)

	desc := callsession.Descriptor{
		AppID:         "app-1",
		Channel:       "consult-7",
		Token:         "tok",
		ParticipantID: "alice",
		Kind:          domain.CallVoice,
	}

	transport.EXPECT().SetHandler(gomock.Any())

	acquire := devices.EXPECT().AcquireAudio(gomock.Any()).Return(audio, nil)
	join := transport.EXPECT().Join(gomock.Any(), desc).Return(nil).After(acquire)
	transport.EXPECT().Publish(gomock.Any(), []callsession.LocalTrack{audio}).Return(nil).After(join)

	audio.EXPECT().Kind().Return(callsession.KindAudio).AnyTimes()
	audio.EXPECT().Close().Return(nil)
	transport.EXPECT().Leave(gomock.Any()).Return(nil)

	s := callsession.NewSession(transport, devices)
	require.NoError(t, s.Start(context.Background(), desc))
	require.Equal(t, callsession.StateConnected, s.State())

	s.End()
	require.Equal(t, callsession.StateEnded, s.State())
}

func TestStartStopsAtFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	devices := mocks.NewMockDeviceSource(ctrl)
	audio := mocks.NewMockLocalTrack(ctrl)
	video := mocks.NewMockLocalTrack(ctrl)

	desc := callsession.Descriptor{
		AppID:   "app-1",
		Channel: "consult-7",
		Token:   "tok",
		Kind:    domain.CallVideo,
	}

	transport.EXPECT().SetHandler(gomock.Any())
	devices.EXPECT().AcquireAudio(gomock.Any()).Return(audio, nil)
	devices.EXPECT().AcquireVideo(gomock.Any()).Return(video, nil)
	transport.EXPECT().Join(gomock.Any(), desc).Return(callsession.ErrToken)

	// Failed setup releases both tracks but never publishes or leaves.
	audio.EXPECT().Kind().Return(callsession.KindAudio).AnyTimes()
	video.EXPECT().Kind().Return(callsession.KindVideo).AnyTimes()
	audio.EXPECT().Close().Return(nil)
	video.EXPECT().Close().Return(nil)

	s := callsession.NewSession(transport, devices)
	err := s.Start(context.Background(), desc)
	require.ErrorIs(t, err, callsession.ErrToken)
	require.Equal(t, callsession.StateError, s.State())
}
