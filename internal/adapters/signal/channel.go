package signal

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/core"
	"github.com/forexorbit/academy-calls/internal/domain"
	"github.com/forexorbit/academy-calls/internal/token"
)

// Error codes on the wire. The client transport maps these onto its
// typed error taxonomy; nothing matches message text.
const (
	codeBadPayload      = "bad_payload"
	codeTokenInvalid    = "token_invalid"
	codeTokenExpired    = "token_expired"
	codeChannelNotFound = "channel_not_found"
	codeRateLimited     = "rate_limited"
)

func (ctl *SignalWSController) handleJoin(sid core.SessionID, conn *wsSignalConn, data []byte) {
	type joinPayload struct {
		Type    string `json:"type"`
		Channel string `json:"channel"`
		Token   string `json:"token"`
		Name    string `json:"name,omitempty"`
		Role    string `json:"role,omitempty"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(conn, codeBadPayload, "bad payload")
		return
	}

	user := ctl.Orch.Registry.GetOrCreateUser(sid)
	if !ctl.Joins.Allow(user.ID) {
		ctl.sendError(conn, codeRateLimited, "too many join attempts")
		return
	}

	claims, err := ctl.Tokens.Verify(p.Token, domain.ChannelName(p.Channel))
	if err != nil {
		code := codeTokenInvalid
		if errors.Is(err, token.ErrTokenExpired) {
			code = codeTokenExpired
		}
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("join token rejected")
		ctl.sendError(conn, code, "channel token rejected")
		return
	}

	channel, ok := ctl.Orch.Channels.GetByName(domain.ChannelName(p.Channel))
	if !ok {
		log.Error().Str("module", "signal").Str("channel", p.Channel).Msg("channel does not exist")
		ctl.sendError(conn, codeChannelNotFound, "channel does not exist")
		return
	}

	if err := ctl.Orch.Registry.UpdateUser(sid, p.Name, claims.Role); err != nil {
		ctl.sendError(conn, codeBadPayload, "invalid name")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("channel", p.Channel).Msg("join")
	if !ctl.Orch.Join(sid, channel.Channel().ID) {
		ctl.sendError(conn, codeChannelNotFound, "channel does not exist")
		return
	}

	clientResp := struct {
		Type         string                `json:"type"`
		Channel      domain.ChannelName    `json:"channel"`
		Participants []core.ParticipantDTO `json:"participants"`
		Count        int                   `json:"count"`
	}{
		Type:         "joined",
		Channel:      channel.Channel().Name,
		Participants: channel.ParticipantsSnapshot(),
		Count:        channel.ParticipantCount(),
	}
	ctl.sendJSON(conn, clientResp)

	broadcastResp := struct {
		Type string      `json:"type"`
		User domain.User `json:"user"`
	}{
		Type: "participant_joined",
		User: *user,
	}
	ctl.BroadcastFrom(sid, broadcastResp)
}

// handleLeave removes the participant from its channel; the signal
// connection itself stays open.
func (ctl *SignalWSController) handleLeave(sid core.SessionID, conn *wsSignalConn) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("leave")
	chanID, _, ok := ctl.Orch.Registry.ChannelOf(sid)

	ctl.Orch.KickBySID(sid)
	ctl.sendJSON(conn, map[string]any{
		"type": "left",
	})

	if ok {
		user := ctl.Orch.Registry.GetOrCreateUser(sid)
		ctl.BroadcastChannel(chanID, struct {
			Type string      `json:"type"`
			User domain.User `json:"user"`
		}{
			Type: "participant_left",
			User: *user,
		})
	}
}

// handleGone runs when the websocket itself dies.
func (ctl *SignalWSController) handleGone(sid core.SessionID) {
	chanID, _, inChannel := ctl.Orch.Registry.ChannelOf(sid)
	user := ctl.Orch.Registry.GetOrCreateUser(sid)
	ctl.Orch.OnSignalDisconnect(sid)
	if inChannel {
		ctl.BroadcastChannel(chanID, struct {
			Type string      `json:"type"`
			User domain.User `json:"user"`
		}{
			Type: "participant_left",
			User: *user,
		})
	}
}

func (ctl *SignalWSController) handleWhoAmI(sid core.SessionID, conn *wsSignalConn) {
	user := ctl.Orch.Registry.GetOrCreateUser(sid)

	resp := struct {
		Type     string             `json:"type"`
		Username string             `json:"username"`
		Role     domain.Role        `json:"role,omitempty"`
		Channel  domain.ChannelName `json:"channel,omitempty"`
	}{
		Type:     "whoami",
		Username: user.Username,
		Role:     user.Role,
	}
	if chanID, _, ok := ctl.Orch.Registry.ChannelOf(sid); ok {
		if channel, ok := ctl.Orch.Channels.Get(chanID); ok {
			resp.Channel = channel.Channel().Name
		}
	}
	ctl.sendJSON(conn, resp)
}
