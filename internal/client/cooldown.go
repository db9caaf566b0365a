package client

import (
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// cooldown blocks outgoing requests for a while after the server throttles us.
// A zero period disables it.
type cooldown struct {
	mu     sync.Mutex
	period time.Duration
	until  time.Time
}

func newCooldown(period time.Duration) *cooldown {
	return &cooldown{period: period}
}

// remaining is how long requests stay blocked at now. Zero means go ahead.
func (c *cooldown) remaining(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.until.IsZero() {
		return 0
	}
	if left := c.until.Sub(now); left > 0 {
		return left
	}

	c.until = time.Time{}
	log.Info("✅ Throttling cooldown over, requests are allowed again")
	return 0
}

// start blocks requests from now on. The server's Retry-After wins when it asks
// for longer than the configured period. An already running cooldown is only
// ever extended.
func (c *cooldown) start(now time.Time, retryAfter time.Duration) {
	if c.period <= 0 {
		return
	}

	wait := max(c.period, retryAfter)

	c.mu.Lock()
	defer c.mu.Unlock()

	if until := now.Add(wait); until.After(c.until) {
		c.until = until
	}
	log.Warnf("🚫 Server is throttling us, requests paused until %s", c.until.Format("15:04:05"))
}

// parseRetryAfter reads a Retry-After header given in seconds. Dates and junk
// yield zero.
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
