package callsession

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "dial tcp: i/o timeout" }
func (fakeNetError) Timeout() bool   { return true }
func (fakeNetError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil stays nil", in: nil, want: nil},
		{name: "cancellation passes through", in: context.Canceled, want: context.Canceled},
		{name: "wrapped cancellation passes through", in: fmt.Errorf("join: %w", context.Canceled), want: context.Canceled},
		{name: "deadline becomes timeout", in: context.DeadlineExceeded, want: ErrTimeout},
		{name: "already classified token", in: fmt.Errorf("%w: expired", ErrToken), want: ErrToken},
		{name: "already classified permission", in: fmt.Errorf("%w: denied", ErrPermission), want: ErrPermission},
		{name: "net error becomes network", in: fakeNetError{}, want: ErrNetwork},
		{name: "anything else becomes unknown", in: errors.New("codec mismatch"), want: ErrUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.in)
			if tc.want == nil {
				require.NoError(t, got)
				return
			}
			require.ErrorIs(t, got, tc.want)
		})
	}
}

func TestClassifyPreservesCause(t *testing.T) {
	cause := errors.New("codec mismatch")
	got := Classify(cause)
	require.ErrorIs(t, got, ErrUnknown)
	require.ErrorIs(t, got, cause)
}

func TestMessageCoversTaxonomy(t *testing.T) {
	seen := map[string]bool{}
	for _, err := range []error{ErrConfiguration, ErrPermission, ErrToken, ErrNetwork, ErrTimeout, ErrUnknown} {
		msg := Message(err)
		require.NotEmpty(t, msg)
		require.False(t, seen[msg], "message for %v reused", err)
		seen[msg] = true
	}
	require.Empty(t, Message(nil))
}
