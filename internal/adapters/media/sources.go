// Package media provides capture sources for headless clients. Tracks
// are sample-fed pion tracks carrying generated audio and video so a
// call can be exercised end to end without real devices.
package media

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/callsession"
)

const (
	audioFrameDuration = 20 * time.Millisecond
	videoFrameDuration = 100 * time.Millisecond

	// 20ms of 48kHz mono PCM, before Opus framing. Used as the payload
	// size for generated audio samples.
	audioFrameBytes = 960
)

// SyntheticSource fabricates audio and video tracks with running
// generator goroutines. Mute is modelled by pausing sample writes, which
// matches how capture pipelines drop frames for disabled tracks.
type SyntheticSource struct {
	ctx context.Context
}

func NewSyntheticSource(ctx context.Context) *SyntheticSource {
	return &SyntheticSource{ctx: ctx}
}

func (s *SyntheticSource) AcquireAudio(ctx context.Context) (callsession.LocalTrack, error) {
	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus, ClockRate: 48000, Channels: 2},
		"audio-"+uuid.NewString(),
		"synthetic",
	)
	if err != nil {
		return nil, err
	}
	lt := newSyntheticTrack(callsession.KindAudio, track)
	go lt.feed(s.ctx, audioFrameDuration, make([]byte, audioFrameBytes))
	return lt, nil
}

func (s *SyntheticSource) AcquireVideo(ctx context.Context) (callsession.LocalTrack, error) {
	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8, ClockRate: 90000},
		"video-"+uuid.NewString(),
		"synthetic",
	)
	if err != nil {
		return nil, err
	}
	lt := newSyntheticTrack(callsession.KindVideo, track)
	go lt.feed(s.ctx, videoFrameDuration, blankVP8Frame())
	return lt, nil
}

type syntheticTrack struct {
	kind    callsession.TrackKind
	track   *webrtc.TrackLocalStaticSample
	enabled atomic.Bool
	closed  atomic.Bool
}

func newSyntheticTrack(kind callsession.TrackKind, track *webrtc.TrackLocalStaticSample) *syntheticTrack {
	t := &syntheticTrack{kind: kind, track: track}
	t.enabled.Store(true)
	return t
}

func (t *syntheticTrack) Kind() callsession.TrackKind { return t.kind }

func (t *syntheticTrack) SetEnabled(enabled bool) { t.enabled.Store(enabled) }

func (t *syntheticTrack) Enabled() bool { return t.enabled.Load() }

func (t *syntheticTrack) Close() error {
	t.closed.Store(true)
	return nil
}

// Pion exposes the underlying track for peer connection attachment.
func (t *syntheticTrack) Pion() webrtc.TrackLocal { return t.track }

func (t *syntheticTrack) feed(ctx context.Context, interval time.Duration, payload []byte) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if t.closed.Load() {
			return
		}
		if !t.enabled.Load() {
			continue
		}
		err := t.track.WriteSample(media.Sample{Data: payload, Duration: interval})
		if err != nil {
			log.Debug().Err(err).Str("module", "media").Str("kind", string(t.kind)).Msg("write sample")
		}
	}
}

// blankVP8Frame returns a minimal keyframe-shaped payload. Decoders will
// reject it, which is fine for plumbing tests where only packet flow matters.
func blankVP8Frame() []byte {
	frame := make([]byte, 128)
	// VP8 uncompressed data chunk start code.
	frame[3] = 0x9d
	frame[4] = 0x01
	frame[5] = 0x2a
	return frame
}

var _ callsession.DeviceSource = (*SyntheticSource)(nil)

// DeniedSource refuses every acquisition, standing in for a user who
// blocked device access.
type DeniedSource struct{}

func (DeniedSource) AcquireAudio(context.Context) (callsession.LocalTrack, error) {
	return nil, fmt.Errorf("%w: microphone", callsession.ErrPermission)
}

func (DeniedSource) AcquireVideo(context.Context) (callsession.LocalTrack, error) {
	return nil, fmt.Errorf("%w: camera", callsession.ErrPermission)
}

var _ callsession.DeviceSource = DeniedSource{}
