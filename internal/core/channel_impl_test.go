package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forexorbit/academy-calls/internal/domain"
)

type stubSignal struct {
	frames []Frame
	fail   bool
	closed bool
}

func (s *stubSignal) TrySend(f Frame) error {
	if s.fail {
		return errors.New("send buffer full")
	}
	s.frames = append(s.frames, f)
	return nil
}

func (s *stubSignal) Close() { s.closed = true }

func addMember(t *testing.T, ch ChannelService, sid SessionID, name string, sig *stubSignal) ParticipantSession {
	t.Helper()
	u, err := domain.NewUser(name, domain.RoleStudent)
	require.NoError(t, err)
	ps := NewParticipantSession(domain.NewParticipant(u)).UpdateSignal(sig)
	ch.AddParticipant(sid, ps)
	return ps
}

func newTestChannel() ChannelService {
	return NewChannelService(&domain.Channel{ID: "ch-1", Name: "consult-1"})
}

func TestChannelMembership(t *testing.T) {
	ch := newTestChannel()
	require.Equal(t, 0, ch.ParticipantCount())

	addMember(t, ch, "s1", "alice", &stubSignal{})
	addMember(t, ch, "s2", "bob", &stubSignal{})
	require.Equal(t, 2, ch.ParticipantCount())

	snap := ch.ParticipantsSnapshot()
	require.Len(t, snap, 2)
	names := map[string]bool{}
	for _, p := range snap {
		names[p.Username] = true
	}
	require.True(t, names["alice"])
	require.True(t, names["bob"])

	ch.RemoveParticipant("s1")
	require.Equal(t, 1, ch.ParticipantCount())

	// Removing an unknown sid is harmless.
	ch.RemoveParticipant("s1")
	require.Equal(t, 1, ch.ParticipantCount())
}

func TestBroadcastSkipsSender(t *testing.T) {
	ch := newTestChannel()
	sig1 := &stubSignal{}
	sig2 := &stubSignal{}
	addMember(t, ch, "s1", "alice", sig1)
	addMember(t, ch, "s2", "bob", sig2)

	res := ch.Broadcast("s1", Frame(`{"type":"ping"}`))
	require.Equal(t, 1, res.SentTo)
	require.Empty(t, res.Dropped)
	require.Empty(t, sig1.frames)
	require.Len(t, sig2.frames, 1)
}

func TestBroadcastReportsBackpressure(t *testing.T) {
	ch := newTestChannel()
	slow := &stubSignal{fail: true}
	fast := &stubSignal{}
	slowPS := addMember(t, ch, "slow", "carol", slow)
	addMember(t, ch, "fast", "dave", fast)

	res := ch.Broadcast("fast", Frame("x"))
	require.Equal(t, 0, res.SentTo)
	require.Len(t, res.Dropped, 1)
	require.Same(t, slowPS, res.Dropped[0])
	require.Empty(t, fast.frames)

	// The channel reports but never disconnects; that is the
	// orchestrator's call.
	require.False(t, slow.closed)
	require.Equal(t, 2, ch.ParticipantCount())
}

func TestSnapshotReflectsTrackState(t *testing.T) {
	ch := newTestChannel()
	ps := addMember(t, ch, "s1", "alice", &stubSignal{})
	ps.Meta().Muted = true
	ps.Meta().VideoOff = true

	snap := ch.ParticipantsSnapshot()
	require.Len(t, snap, 1)
	require.True(t, snap[0].Muted)
	require.True(t, snap[0].VideoOff)
}
