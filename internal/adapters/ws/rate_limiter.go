package ws

import (
	"sync"
	"time"

	"github.com/animolab/animolab/internal/domain"
)

const (
	refreshLimit  = 10
	refreshWindow = 10 * time.Second
)

// RefreshLimiter bounds how often a single user can trigger a
// reservation store lookup through the reserved event. The store is the
// only blocking dependency of the realtime layer, so it gets a sliding
// window per user.
type RefreshLimiter struct {
	mu       sync.Mutex
	history  map[domain.UserID][]time.Time
	limit    int
	interval time.Duration
}

func NewRefreshLimiter(limit int, interval time.Duration) *RefreshLimiter {
	return &RefreshLimiter{
		history:  make(map[domain.UserID][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (rl *RefreshLimiter) Allow(uid domain.UserID) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.interval)

	attempts := rl.history[uid]

	// Drop attempts that fell out of the window.
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
