package app

import (
	"sync"

	"github.com/google/uuid"

	"github.com/forexorbit/academy-calls/internal/core"
	"github.com/forexorbit/academy-calls/internal/domain"
)

type ChannelManagerImpl struct {
	mu     sync.RWMutex
	byID   map[domain.ChannelID]core.ChannelService
	byName map[domain.ChannelName]domain.ChannelID
}

func NewChannelManager() core.ChannelManager {
	return &ChannelManagerImpl{
		byID:   make(map[domain.ChannelID]core.ChannelService),
		byName: make(map[domain.ChannelName]domain.ChannelID),
	}
}

func (m *ChannelManagerImpl) Create(name domain.ChannelName) core.ChannelService {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.byName[name]; ok {
		return m.byID[id]
	}
	ch := core.NewChannelService(&domain.Channel{
		ID:   domain.ChannelID(uuid.NewString()),
		Name: name,
	})
	m.byID[ch.Channel().ID] = ch
	m.byName[name] = ch.Channel().ID
	return ch
}

func (m *ChannelManagerImpl) Get(id domain.ChannelID) (core.ChannelService, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ch, ok := m.byID[id]
	return ch, ok
}

func (m *ChannelManagerImpl) GetByName(name domain.ChannelName) (core.ChannelService, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	ch, ok := m.byID[id]
	return ch, ok
}

func (m *ChannelManagerImpl) List() []core.ChannelInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.ChannelInfo, 0, len(m.byID))
	for id, ch := range m.byID {
		out = append(out, core.ChannelInfo{
			ID:               id,
			Name:             ch.Channel().Name,
			ParticipantCount: ch.ParticipantCount(),
		})
	}
	return out
}

func (m *ChannelManagerImpl) Stop(id domain.ChannelID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.byID[id]; ok {
		delete(m.byName, ch.Channel().Name)
		delete(m.byID, id)
	}
}
