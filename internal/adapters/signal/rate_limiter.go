package signal

import (
	"sync"
	"time"

	"github.com/forexorbit/academy-calls/internal/domain"
)

const defaultJoinWindow = time.Minute

// JoinRateLimiter bounds join attempts per user over a sliding window.
type JoinRateLimiter struct {
	mu       sync.Mutex
	history  map[domain.UserID][]time.Time
	limit    int
	interval time.Duration
}

func NewJoinRateLimiter(limit int, interval time.Duration) *JoinRateLimiter {
	return &JoinRateLimiter{
		history:  make(map[domain.UserID][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (rl *JoinRateLimiter) Allow(uid domain.UserID) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.interval)

	attempts := rl.history[uid]

	fresh := make([]time.Time, 0, len(attempts))
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= rl.limit {
		rl.history[uid] = fresh
		return false
	}

	fresh = append(fresh, now)
	rl.history[uid] = fresh

	return true
}
