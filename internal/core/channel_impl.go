package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/domain"
)

// channelImpl is a threadsafe in-memory channel.
// It never closes adapter-owned resources.
type channelImpl struct {
	channel *domain.Channel
	mu      sync.RWMutex
	bySID   map[SessionID]ParticipantSession
	byUser  map[domain.UserID]SessionID
}

func NewChannelService(channel *domain.Channel) ChannelService {
	return &channelImpl{
		channel: channel,
		bySID:   make(map[SessionID]ParticipantSession),
		byUser:  make(map[domain.UserID]SessionID),
	}
}

func (c *channelImpl) Channel() *domain.Channel { return c.channel }

func (c *channelImpl) ParticipantCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bySID)
}

func (c *channelImpl) AddParticipant(sid SessionID, ps ParticipantSession) {
	u := ps.Meta().User.ID
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bySID[sid] = ps
	c.byUser[u] = sid
	log.Info().Str("module", "core.channel").Str("sid", string(sid)).Str("user", string(u)).Msg("participant added")
}

func (c *channelImpl) RemoveParticipant(sid SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ps, ok := c.bySID[sid]; ok {
		u := ps.Meta().User.ID
		delete(c.byUser, u)
	}
	delete(c.bySID, sid)
	log.Info().Str("module", "core.channel").Str("sid", string(sid)).Msg("participant removed")
}

func (c *channelImpl) Broadcast(from SessionID, data Frame) PublishResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := PublishResult{}
	for sid, ps := range c.bySID {
		if sid == from {
			continue
		}
		if err := ps.Signal().TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, ps)
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.channel").Str("from", string(from)).Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (c *channelImpl) ParticipantsSnapshot() []ParticipantDTO {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ParticipantDTO, 0, len(c.bySID))
	for _, ps := range c.bySID {
		meta := ps.Meta()
		u := meta.User
		out = append(out, ParticipantDTO{
			ID:       u.ID,
			Username: u.Username,
			Role:     u.Role,
			Muted:    meta.Muted,
			VideoOff: meta.VideoOff,
		})
	}
	return out
}
