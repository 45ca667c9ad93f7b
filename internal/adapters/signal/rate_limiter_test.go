package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJoinRateLimiter(t *testing.T) {
	rl := NewJoinRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("alice"), "attempt %d", i)
	}
	require.False(t, rl.Allow("alice"))

	// Other users have their own budget.
	require.True(t, rl.Allow("bob"))
}

func TestJoinRateLimiterWindowExpiry(t *testing.T) {
	rl := NewJoinRateLimiter(2, 30*time.Millisecond)

	require.True(t, rl.Allow("alice"))
	require.True(t, rl.Allow("alice"))
	require.False(t, rl.Allow("alice"))

	time.Sleep(40 * time.Millisecond)
	require.True(t, rl.Allow("alice"))
}
