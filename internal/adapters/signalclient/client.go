// Package signalclient implements the callsession.Transport contract
// over the server's websocket signaling protocol plus a pion peer
// connection for media.
package signalclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/adapters/rtc"
	"github.com/forexorbit/academy-calls/internal/callsession"
)

// PionTrack is implemented by local tracks that can hand out the
// underlying pion track for publishing.
type PionTrack interface {
	Pion() webrtc.TrackLocal
}

type pendingReq struct {
	want string
	ch   chan result
}

type result struct {
	data json.RawMessage
	err  error
}

// Transport talks to one signal endpoint for the lifetime of one call.
type Transport struct {
	url     string
	handler callsession.TransportHandler

	mu      sync.Mutex
	conn    *websocket.Conn
	pc      *rtc.WebRTCConnection
	pending *pendingReq
	closed  bool
}

func New(url string) *Transport {
	return &Transport{url: url}
}

func (t *Transport) SetHandler(h callsession.TransportHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = h
}

// Join dials the signal endpoint and requests channel admission. Error
// codes from the server are mapped onto the session's typed taxonomy.
func (t *Transport) Join(ctx context.Context, desc callsession.Descriptor) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return fmt.Errorf("%w: dial signal endpoint: %v", callsession.ErrNetwork, err)
	}
	t.mu.Lock()
	t.conn = conn
	t.closed = false
	t.mu.Unlock()

	go t.readLoop(conn)

	_, err = t.request(ctx, struct {
		Type    string `json:"type"`
		AppID   string `json:"app_id"`
		Channel string `json:"channel"`
		Token   string `json:"token"`
		Name    string `json:"name,omitempty"`
	}{
		Type:    "join",
		AppID:   desc.AppID,
		Channel: desc.Channel,
		Token:   desc.Token,
		Name:    desc.ParticipantID,
	}, "joined")
	if err != nil {
		t.closeConn()
		return err
	}
	return nil
}

// Publish negotiates a peer connection carrying the local tracks.
func (t *Transport) Publish(ctx context.Context, tracks []callsession.LocalTrack) error {
	pc, err := rtc.NewWebRTCConnection(rtc.DefaultWebRTCConfig(), "client")
	if err != nil {
		return fmt.Errorf("%w: new peer connection: %v", callsession.ErrUnknown, err)
	}

	pc.OnICECandidate(func(ci webrtc.ICECandidateInit) {
		t.sendCandidate(ci)
	})
	pc.OnTrack(func(trackCtx context.Context, track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		go drain(trackCtx, track)
		h := t.currentHandler()
		if h != nil {
			h.OnTrackPublished(track.StreamID(), remoteTrack{t: track})
		}
	})
	pc.OnClosed(func() {
		h := t.currentHandler()
		if h != nil {
			h.OnDisconnected(fmt.Errorf("%w: media connection closed", callsession.ErrNetwork))
		}
	})

	for _, lt := range tracks {
		pt, ok := lt.(PionTrack)
		if !ok {
			pc.Close()
			return fmt.Errorf("%w: track %s cannot be published over webrtc", callsession.ErrConfiguration, lt.Kind())
		}
		if _, err := pc.AddTrackLocal(pt.Pion()); err != nil {
			pc.Close()
			return fmt.Errorf("%w: add track: %v", callsession.ErrUnknown, err)
		}
	}

	if err := pc.Start(context.Background()); err != nil {
		pc.Close()
		return fmt.Errorf("%w: start peer connection: %v", callsession.ErrUnknown, err)
	}

	offer, err := pc.CreateAndSetOffer()
	if err != nil {
		pc.Close()
		return fmt.Errorf("%w: create offer: %v", callsession.ErrUnknown, err)
	}

	raw, err := t.request(ctx, map[string]string{
		"type": "offer",
		"sdp":  offer.SDP,
	}, "answer")
	if err != nil {
		pc.Close()
		return err
	}

	var answer struct {
		SDP string `json:"sdp"`
	}
	if err := json.Unmarshal(raw, &answer); err != nil {
		pc.Close()
		return fmt.Errorf("%w: bad answer payload: %v", callsession.ErrUnknown, err)
	}
	if err := pc.ApplyAnswer(webrtc.SessionDescription{
		Type: webrtc.SDPTypeAnswer,
		SDP:  answer.SDP,
	}); err != nil {
		pc.Close()
		return fmt.Errorf("%w: apply answer: %v", callsession.ErrUnknown, err)
	}

	t.mu.Lock()
	t.pc = pc
	t.mu.Unlock()
	return nil
}

// Leave tells the server goodbye and releases the connection pair.
// Safe to call when Join never succeeded.
func (t *Transport) Leave(ctx context.Context) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return nil
	}
	_, err := t.request(ctx, map[string]string{"type": "leave"}, "left")
	t.closeConn()
	if err != nil {
		return fmt.Errorf("leave channel: %w", err)
	}
	return nil
}

// ReportTrackState mirrors a local mute/video-off flip to the server.
func (t *Transport) ReportTrackState(kind callsession.TrackKind, enabled bool) {
	t.writeJSON(struct {
		Type    string `json:"type"`
		Kind    string `json:"kind"`
		Enabled bool   `json:"enabled"`
	}{
		Type:    "track_state",
		Kind:    string(kind),
		Enabled: enabled,
	})
}

func (t *Transport) request(ctx context.Context, payload any, wantType string) (json.RawMessage, error) {
	ch := make(chan result, 1)
	t.mu.Lock()
	if t.conn == nil || t.closed {
		t.mu.Unlock()
		return nil, fmt.Errorf("%w: signal connection closed", callsession.ErrNetwork)
	}
	t.pending = &pendingReq{want: wantType, ch: ch}
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.pending = nil
		t.mu.Unlock()
	}()

	if err := t.writeJSON(payload); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.data, res.err
	}
}

func (t *Transport) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.mu.Lock()
			pending := t.pending
			t.pending = nil
			closed := t.closed
			t.mu.Unlock()
			wrapped := fmt.Errorf("%w: signal read: %v", callsession.ErrNetwork, err)
			if pending != nil {
				pending.ch <- result{err: wrapped}
			}
			if !closed {
				if h := t.currentHandler(); h != nil {
					h.OnDisconnected(wrapped)
				}
			}
			return
		}
		t.dispatch(data)
	}
}

func (t *Transport) dispatch(data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signalclient").Msg("bad signal json")
		return
	}

	t.mu.Lock()
	pending := t.pending
	t.mu.Unlock()

	switch env.Type {
	case "error":
		var p struct {
			Code  string `json:"code"`
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &p)
		err := mapErrorCode(p.Code, p.Error)
		if pending != nil {
			pending.ch <- result{err: err}
			return
		}
		log.Warn().Str("module", "signalclient").Str("code", p.Code).Msg("unsolicited signal error")
	case "candidate":
		t.applyCandidate(data)
	case "unpublished":
		var p struct {
			Participant string `json:"participant"`
			Kind        string `json:"kind"`
		}
		if err := json.Unmarshal(data, &p); err == nil {
			if h := t.currentHandler(); h != nil {
				h.OnTrackUnpublished(p.Participant, callsession.TrackKind(p.Kind))
			}
		}
	case "participant_left":
		var p struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
		}
		if err := json.Unmarshal(data, &p); err == nil {
			if h := t.currentHandler(); h != nil {
				h.OnParticipantLeft(p.User.ID)
			}
		}
	case "published", "participant_joined", "track_state", "chat", "channel_closed", "pong":
		// Informational; media arrival drives the participant list.
	default:
		if pending != nil && pending.want == env.Type {
			pending.ch <- result{data: data}
			return
		}
		log.Debug().Str("module", "signalclient").Str("type", env.Type).Msg("unhandled signal")
	}
}

func (t *Transport) sendCandidate(ci webrtc.ICECandidateInit) {
	msg := struct {
		Type          string `json:"type"`
		Candidate     string `json:"candidate"`
		SDPMid        string `json:"sdpMid,omitempty"`
		SDPMLineIndex uint16 `json:"sdpMLineIndex"`
	}{Type: "candidate", Candidate: ci.Candidate}
	if ci.SDPMid != nil {
		msg.SDPMid = *ci.SDPMid
	}
	if ci.SDPMLineIndex != nil {
		msg.SDPMLineIndex = *ci.SDPMLineIndex
	}
	if err := t.writeJSON(msg); err != nil {
		log.Warn().Err(err).Str("module", "signalclient").Msg("send candidate")
	}
}

func (t *Transport) applyCandidate(data []byte) {
	var p struct {
		Candidate     string `json:"candidate"`
		SDPMid        string `json:"sdpMid"`
		SDPMLineIndex uint16 `json:"sdpMLineIndex"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}
	t.mu.Lock()
	pc := t.pc
	t.mu.Unlock()
	if pc == nil {
		return
	}
	cand := webrtc.ICECandidateInit{Candidate: p.Candidate}
	if p.SDPMid != "" {
		cand.SDPMid = &p.SDPMid
	}
	cand.SDPMLineIndex = &p.SDPMLineIndex
	if err := pc.AddICECandidate(cand); err != nil {
		log.Warn().Err(err).Str("module", "signalclient").Msg("add ice candidate")
	}
}

func (t *Transport) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal signal message: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil || t.closed {
		return fmt.Errorf("%w: signal connection closed", callsession.ErrNetwork)
	}
	if err := t.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return fmt.Errorf("%w: signal write: %v", callsession.ErrNetwork, err)
	}
	return nil
}

func (t *Transport) currentHandler() callsession.TransportHandler {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handler
}

func (t *Transport) closeConn() {
	t.mu.Lock()
	conn := t.conn
	pc := t.pc
	t.conn = nil
	t.pc = nil
	t.closed = true
	t.mu.Unlock()
	if pc != nil {
		pc.Close()
	}
	if conn != nil {
		_ = conn.Close()
	}
}

func mapErrorCode(code, msg string) error {
	switch code {
	case "token_invalid", "token_expired":
		return fmt.Errorf("%w: %s", callsession.ErrToken, msg)
	case "channel_not_found":
		return fmt.Errorf("%w: %s", callsession.ErrConfiguration, msg)
	default:
		return fmt.Errorf("%w: %s (%s)", callsession.ErrUnknown, msg, code)
	}
}

// drain keeps the receive path flowing for tracks the client does not render.
func drain(ctx context.Context, track *webrtc.TrackRemote) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if _, _, err := track.ReadRTP(); err != nil {
			return
		}
	}
}

type remoteTrack struct {
	t *webrtc.TrackRemote
}

func (r remoteTrack) ID() string { return r.t.ID() }

func (r remoteTrack) Kind() callsession.TrackKind {
	if r.t.Kind() == webrtc.RTPCodecTypeVideo {
		return callsession.KindVideo
	}
	return callsession.KindAudio
}

var _ callsession.Transport = (*Transport)(nil)
var _ callsession.TrackStateReporter = (*Transport)(nil)
