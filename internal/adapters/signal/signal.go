package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/app/orch"
	"github.com/forexorbit/academy-calls/internal/core"
	"github.com/forexorbit/academy-calls/internal/domain"
	"github.com/forexorbit/academy-calls/internal/token"
)

var ErrBackpressure = errors.New("backpressure")

type SignalWSController struct {
	Orch   *orch.Orchestrator
	Tokens *token.Issuer
	Joins  *JoinRateLimiter
}

func NewSignalWSController(o *orch.Orchestrator, tokens *token.Issuer) *SignalWSController {
	return &SignalWSController{
		Orch:   o,
		Tokens: tokens,
		Joins:  NewJoinRateLimiter(10, defaultJoinWindow),
	}
}

type wsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

func (ctl *SignalWSController) BroadcastFrom(sid core.SessionID, v any) {
	chanID, _, ok := ctl.Orch.Registry.ChannelOf(sid)
	if !ok {
		return
	}
	for _, snap := range ctl.Orch.Registry.MembersOfChannel(chanID) {
		if snap.SID == sid {
			continue
		}
		ctl.sendJSONSignal(snap.Session.Signal(), v)
	}
}

func (ctl *SignalWSController) BroadcastChannel(id domain.ChannelID, v any) {
	for _, snap := range ctl.Orch.Registry.MembersOfChannel(id) {
		ctl.sendJSONSignal(snap.Session.Signal(), v)
	}
}

// EvictChannel tells every member the call is over, then clears the
// channel. This is the eviction path consultation completion uses.
func (ctl *SignalWSController) EvictChannel(id domain.ChannelID) {
	ctl.BroadcastChannel(id, struct {
		Type string `json:"type"`
	}{Type: "channel_closed"})
	ctl.Orch.EvictChannel(id)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(c.GetString("client_token"))
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}

	conn := &wsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	user := ctl.Orch.Registry.GetOrCreateUser(sid)
	meta := domain.NewParticipant(user)
	sess := core.NewParticipantSession(meta).UpdateSignal(conn)
	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Registry.BindSignal(sid, sess, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
