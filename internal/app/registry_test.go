package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forexorbit/academy-calls/internal/core"
	"github.com/forexorbit/academy-calls/internal/domain"
)

func TestGetOrCreateUserIsStable(t *testing.T) {
	r := NewRegistry()

	u := r.GetOrCreateUser("sid-1")
	require.Equal(t, domain.UserID("sid-1"), u.ID)
	require.Equal(t, "guest", u.Username)

	again := r.GetOrCreateUser("sid-1")
	require.Same(t, u, again)
}

func TestUpdateUser(t *testing.T) {
	r := NewRegistry()
	r.GetOrCreateUser("sid-1")

	require.NoError(t, r.UpdateUser("sid-1", "alice", domain.RoleExpert))
	u := r.GetOrCreateUser("sid-1")
	require.Equal(t, "alice", u.Username)
	require.Equal(t, domain.RoleExpert, u.Role)

	// Empty fields leave the current values alone.
	require.NoError(t, r.UpdateUser("sid-1", "", ""))
	require.Equal(t, "alice", u.Username)
	require.Equal(t, domain.RoleExpert, u.Role)

	tooLong := make([]byte, domain.MaxUsernameLen+1)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	require.ErrorIs(t, r.UpdateUser("sid-1", string(tooLong), domain.RoleStudent), domain.ErrUsernameTooLong)
	require.Equal(t, "alice", u.Username)
}

func TestChannelAssociation(t *testing.T) {
	r := NewRegistry()
	u := r.GetOrCreateUser("sid-1")
	ps := core.NewParticipantSession(domain.NewParticipant(u))
	r.BindSignal("sid-1", ps, nil)

	_, _, ok := r.ChannelOf("sid-1")
	require.False(t, ok)

	require.True(t, r.UpdateChannel("sid-1", "ch-1"))
	id, got, ok := r.ChannelOf("sid-1")
	require.True(t, ok)
	require.Equal(t, domain.ChannelID("ch-1"), id)
	require.Same(t, ps, got)

	members := r.MembersOfChannel("ch-1")
	require.Len(t, members, 1)
	require.Equal(t, core.SessionID("sid-1"), members[0].SID)

	r.RemoveChannel("sid-1")
	_, _, ok = r.ChannelOf("sid-1")
	require.False(t, ok)

	require.False(t, r.UpdateChannel("sid-2", "ch-1"))
}

func TestCancelFiresBoundCancel(t *testing.T) {
	r := NewRegistry()
	u := r.GetOrCreateUser("sid-1")
	ps := core.NewParticipantSession(domain.NewParticipant(u))

	ctx, cancel := context.WithCancel(context.Background())
	r.BindSignal("sid-1", ps, cancel)

	require.True(t, r.Cancel("sid-1"))
	require.ErrorIs(t, ctx.Err(), context.Canceled)

	require.False(t, r.Cancel("missing"))
}

func TestChannelManagerCreateIsGetOrCreate(t *testing.T) {
	m := NewChannelManager()

	a := m.Create("consult-1")
	b := m.Create("consult-1")
	require.Same(t, a, b)

	byName, ok := m.GetByName("consult-1")
	require.True(t, ok)
	require.Same(t, a, byName)

	byID, ok := m.Get(a.Channel().ID)
	require.True(t, ok)
	require.Same(t, a, byID)

	require.Len(t, m.List(), 1)

	m.Stop(a.Channel().ID)
	_, ok = m.GetByName("consult-1")
	require.False(t, ok)
	require.Empty(t, m.List())
}
