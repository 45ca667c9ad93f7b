package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"

	"github.com/forexorbit/academy-calls/internal/domain"
)

func TestIssueVerify(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	signed, err := iss.Issue("chan-1", "user-1", domain.RoleStudent)
	require.NoError(t, err)

	claims, err := iss.Verify(signed, "chan-1")
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "chan-1", claims.Channel)
	require.Equal(t, domain.RoleStudent, claims.Role)
}

func TestVerifyRejects(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	other := NewIssuer("wrong", time.Hour)

	valid, err := iss.Issue("chan-1", "user-1", domain.RoleExpert)
	require.NoError(t, err)

	// mint an already-expired token
	jwt.TimeFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := iss.Issue("chan-1", "user-1", domain.RoleExpert)
	jwt.TimeFunc = time.Now
	require.NoError(t, err)

	forged, err := other.Issue("chan-1", "user-1", domain.RoleExpert)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		channel domain.ChannelName
		wantErr error
	}{
		{name: "garbage", token: "not-a-token", channel: "chan-1", wantErr: ErrTokenInvalid},
		{name: "wrong signature", token: forged, channel: "chan-1", wantErr: ErrTokenInvalid},
		{name: "expired", token: expired, channel: "chan-1", wantErr: ErrTokenExpired},
		{name: "wrong channel", token: valid, channel: "chan-2", wantErr: ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iss.Verify(tt.token, tt.channel)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
