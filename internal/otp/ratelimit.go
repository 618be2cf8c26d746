package otp

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter bounds how often codes can be requested per email address.
type Limiter interface {
	Allow(key string) bool
}

type memoryLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
}

// NewMemoryLimiter allows max requests per key within the sliding window.
func NewMemoryLimiter(window time.Duration, max int) Limiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &memoryLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
	}
}

func (l *memoryLimiter) Allow(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)
	kept := l.hits[key][:0]
	for _, ts := range l.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}

const redisAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisLimiter struct {
	client redisCmdable
	window time.Duration
	max    int
	prefix string
}

// NewRedisLimiter is the multi-instance variant of NewMemoryLimiter.
func NewRedisLimiter(client *redis.Client, window time.Duration, max int) Limiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "otp:rl:",
	}
}

func (l *redisLimiter) Allow(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	n, err := l.client.Eval(ctx, redisAllowScript, []string{l.prefix + key}, seconds).Int64()
	if err != nil {
		// Fail open: a broken limiter should not block password resets.
		log.Printf("OTP rate limiter redis error: %v", err)
		return true
	}
	return n <= int64(l.max)
}
