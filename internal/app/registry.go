package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/core"
	"github.com/forexorbit/academy-calls/internal/domain"
)

type sessionEntry struct {
	ChannelID domain.ChannelID
	Session   core.ParticipantSession
	Cancel    context.CancelFunc
}

// Registry maps signal session ids to participant sessions and their
// current channel.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
	users    map[core.SessionID]*domain.User
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
		users:    make(map[core.SessionID]*domain.User),
	}
}

func (r *Registry) GetOrCreateUser(sid core.SessionID) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[sid]; ok {
		return u
	}
	u := &domain.User{ID: domain.UserID(sid), Username: "guest"}
	r.users[sid] = u
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("created new user")
	return u
}

func (r *Registry) UpdateUser(sid core.SessionID, name string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[sid]
	if !ok {
		return nil
	}
	if name != "" {
		if err := u.SetUsername(name); err != nil {
			return err
		}
	}
	if role != "" {
		u.Role = role
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("username", u.Username).Msg("updated user")
	return nil
}

func (r *Registry) BindSignal(sid core.SessionID, sess core.ParticipantSession, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{Session: sess, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound signal")
}

func (r *Registry) GetSession(sid core.SessionID) (core.ParticipantSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Session, true
	}
	return nil, false
}

func (r *Registry) Unbind(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
}

func (r *Registry) ChannelOf(sid core.SessionID) (domain.ChannelID, core.ParticipantSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[sid]
	if !ok || entry.ChannelID == "" {
		return "", nil, false
	}
	return entry.ChannelID, entry.Session, true
}

func (r *Registry) UpdateChannel(sid core.SessionID, id domain.ChannelID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return false
	}
	entry.ChannelID = id
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("channel", string(id)).Msg("updated channel")
	return true
}

func (r *Registry) RemoveChannel(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.sessions[sid]; ok {
		entry.ChannelID = ""
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("removed channel association")
}

type regSnap struct {
	SID     core.SessionID
	Session core.ParticipantSession
}

func (r *Registry) MembersOfChannel(id domain.ChannelID) []regSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]regSnap, 0, len(r.sessions))
	for sid, e := range r.sessions {
		if e.ChannelID == id {
			out = append(out, regSnap{SID: sid, Session: e.Session})
		}
	}
	return out
}

func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}
