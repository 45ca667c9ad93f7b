package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/core"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *wsSignalConn) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, sid core.SessionID, c *wsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		ctl.handleGone(sid)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			ctl.handleSignal(sid, c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(sid core.SessionID, c *wsSignalConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case "join":
		ctl.handleJoin(sid, c, data)
	case "leave":
		ctl.handleLeave(sid, c)
	case "ping":
		ctl.handlePing(c)
	case "whoami":
		ctl.handleWhoAmI(sid, c)
	case "track_state":
		ctl.handleTrackState(sid, c, data)
	case "chat":
		// Relayed verbatim; slow receivers are the orchestrator's problem.
		ctl.Orch.OnFrame(sid, core.Frame(data))
	case "offer":
		ctl.handleOffer(sid, c, data)
	case "candidate":
		ctl.handleCandidate(sid, c, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}

func (ctl *SignalWSController) handlePing(c *wsSignalConn) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	ctl.sendJSON(c, resp)
}

func (ctl *SignalWSController) sendJSON(c *wsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *SignalWSController) sendJSONSignal(c core.SignalConnection, v any) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSONSignal marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *SignalWSController) sendError(c *wsSignalConn, code, msg string) {
	ctl.sendJSON(c, struct {
		Type  string `json:"type"`
		Code  string `json:"code"`
		Error string `json:"error"`
	}{
		Type:  "error",
		Code:  code,
		Error: msg,
	})
}
