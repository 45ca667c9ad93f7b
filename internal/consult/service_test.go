package consult

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forexorbit/academy-calls/internal/app"
	"github.com/forexorbit/academy-calls/internal/app/orch"
	"github.com/forexorbit/academy-calls/internal/app/sfu"
	"github.com/forexorbit/academy-calls/internal/core"
	"github.com/forexorbit/academy-calls/internal/domain"
)

func newCallServer() (core.ChannelManager, *orch.Orchestrator) {
	channels := app.NewChannelManager()
	o := &orch.Orchestrator{
		Registry: app.NewRegistry(),
		Channels: channels,
		Relays:   sfu.NewRelayManager(),
	}
	return channels, o
}

func newTestService() *Service {
	channels, o := newCallServer()
	return NewService(NewInMemRepository(), channels, o)
}

type stubSignal struct{}

func (stubSignal) TrySend(core.Frame) error { return nil }
func (stubSignal) Close()                   {}

func TestRequestCreatesPending(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Request(ctx, "student-1", "expert-1", "EUR/USD entries", domain.CallVoice)
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	require.Equal(t, domain.ConsultationPending, c.Status)
	require.Empty(t, c.Channel)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)
}

func TestRequestRejectsUnknownKind(t *testing.T) {
	svc := newTestService()
	_, err := svc.Request(context.Background(), "student-1", "expert-1", "topic", "screenshare")
	require.ErrorIs(t, err, ErrInvalidKind)
}

func TestAcceptAllocatesChannel(t *testing.T) {
	channels, o := newCallServer()
	svc := NewService(NewInMemRepository(), channels, o)
	ctx := context.Background()

	c, err := svc.Request(ctx, "student-1", "expert-1", "topic", domain.CallVideo)
	require.NoError(t, err)

	accepted, err := svc.Accept(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ConsultationActive, accepted.Status)
	require.NotEmpty(t, accepted.Channel)

	_, ok := channels.GetByName(accepted.Channel)
	require.True(t, ok)
}

func TestCompleteStopsChannel(t *testing.T) {
	channels, o := newCallServer()
	svc := NewService(NewInMemRepository(), channels, o)
	ctx := context.Background()

	c, err := svc.Request(ctx, "student-1", "expert-1", "topic", domain.CallVoice)
	require.NoError(t, err)
	accepted, err := svc.Accept(ctx, c.ID)
	require.NoError(t, err)

	done, err := svc.Complete(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ConsultationCompleted, done.Status)

	_, ok := channels.GetByName(accepted.Channel)
	require.False(t, ok)
}

func TestCompleteEvictsLiveCall(t *testing.T) {
	channels, o := newCallServer()
	svc := NewService(NewInMemRepository(), channels, o)
	ctx := context.Background()

	c, err := svc.Request(ctx, "student-1", "expert-1", "topic", domain.CallVoice)
	require.NoError(t, err)
	accepted, err := svc.Accept(ctx, c.ID)
	require.NoError(t, err)

	ch, ok := channels.GetByName(accepted.Channel)
	require.True(t, ok)

	sid := core.SessionID("student-ws")
	u := o.Registry.GetOrCreateUser(sid)
	sess := core.NewParticipantSession(domain.NewParticipant(u)).UpdateSignal(stubSignal{})
	o.Registry.BindSignal(sid, sess, nil)
	require.True(t, o.Join(sid, ch.Channel().ID))
	require.Equal(t, 1, ch.ParticipantCount())

	_, err = svc.Complete(ctx, c.ID)
	require.NoError(t, err)

	// The completed call holds no seats and no channel association.
	require.Equal(t, 0, ch.ParticipantCount())
	_, _, bound := o.Registry.ChannelOf(sid)
	require.False(t, bound)
	_, ok = channels.GetByName(accepted.Channel)
	require.False(t, ok)
}

func TestTransitions(t *testing.T) {
	type step struct {
		op      string
		wantErr error
	}
	tests := []struct {
		name  string
		steps []step
	}{
		{name: "accept then complete", steps: []step{{op: "accept"}, {op: "complete"}}},
		{name: "reject from pending", steps: []step{{op: "reject"}}},
		{name: "complete needs active", steps: []step{{op: "complete", wantErr: ErrInvalidTransition}}},
		{name: "double accept", steps: []step{{op: "accept"}, {op: "accept", wantErr: ErrInvalidTransition}}},
		{name: "reject after accept", steps: []step{{op: "accept"}, {op: "reject", wantErr: ErrInvalidTransition}}},
		{name: "accept after reject", steps: []step{{op: "reject"}, {op: "accept", wantErr: ErrInvalidTransition}}},
		{name: "double complete", steps: []step{{op: "accept"}, {op: "complete"}, {op: "complete", wantErr: ErrInvalidTransition}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService()
			ctx := context.Background()
			c, err := svc.Request(ctx, "student-1", "expert-1", "topic", domain.CallVoice)
			require.NoError(t, err)

			for _, st := range tc.steps {
				switch st.op {
				case "accept":
					_, err = svc.Accept(ctx, c.ID)
				case "complete":
					_, err = svc.Complete(ctx, c.ID)
				case "reject":
					_, err = svc.Reject(ctx, c.ID)
				}
				if st.wantErr != nil {
					require.ErrorIs(t, err, st.wantErr)
				} else {
					require.NoError(t, err)
				}
			}
		})
	}
}

func TestGetUnknownID(t *testing.T) {
	svc := newTestService()
	_, err := svc.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Accept(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersByStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Request(ctx, "student-1", "expert-1", "first", domain.CallVoice)
	require.NoError(t, err)
	_, err = svc.Request(ctx, "student-2", "expert-1", "second", domain.CallVoice)
	require.NoError(t, err)
	_, err = svc.Accept(ctx, a.ID)
	require.NoError(t, err)

	pending, err := svc.List(ctx, domain.ConsultationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "second", pending[0].Topic)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}
