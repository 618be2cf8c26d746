package otp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// mockRedisKV emulates the two redis commands the stores use: SET with TTL
// and the compare-and-delete verify script.
type mockRedisKV struct {
	values  map[string]string
	setErr  error
	evalErr error
}

func newMockRedisKV() *mockRedisKV {
	return &mockRedisKV{values: make(map[string]string)}
}

func (m *mockRedisKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	m.values[key] = fmt.Sprint(value)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKV) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	cmd := redis.NewCmd(ctx)
	if m.evalErr != nil {
		cmd.SetErr(m.evalErr)
		return cmd
	}
	if v, ok := m.values[keys[0]]; ok && len(args) == 1 && fmt.Sprint(args[0]) == v {
		delete(m.values, keys[0])
		cmd.SetVal(int64(1))
		return cmd
	}
	cmd.SetVal(int64(0))
	return cmd
}

func newTestRedisStore(client redisCmdable) *RedisStore {
	return &RedisStore{
		client: client,
		domain: testDomain,
		ttl:    time.Minute,
		prefix: "otp:code:",
	}
}

func TestRedisStoreIssueAndVerify(t *testing.T) {
	mock := newMockRedisKV()
	store := newTestRedisStore(mock)

	code, err := store.Issue("alice@gct.ac.in")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if got := mock.values["otp:code:alice@gct.ac.in"]; got != code {
		t.Errorf("stored value = %q, want %q", got, code)
	}

	if !store.Verify("alice@gct.ac.in", code) {
		t.Fatal("Verify with the right code should succeed")
	}
	if store.Verify("alice@gct.ac.in", code) {
		t.Error("Verify must consume the entry")
	}
}

func TestRedisStoreRejectsForeignDomain(t *testing.T) {
	store := newTestRedisStore(newMockRedisKV())

	if _, err := store.Issue("bob@gmail.com"); err != ErrInvalidDomain {
		t.Errorf("Issue for foreign domain: got %v, want ErrInvalidDomain", err)
	}
}

func TestRedisStoreIssuePropagatesError(t *testing.T) {
	mock := newMockRedisKV()
	mock.setErr = errors.New("connection refused")
	store := newTestRedisStore(mock)

	if _, err := store.Issue("alice@gct.ac.in"); err == nil {
		t.Error("Issue should fail when redis is down")
	}
}

func TestRedisStoreVerifyFailsClosed(t *testing.T) {
	mock := newMockRedisKV()
	mock.evalErr = errors.New("connection refused")
	store := newTestRedisStore(mock)

	if store.Verify("alice@gct.ac.in", "123456") {
		t.Error("Verify should fail when redis is unreachable")
	}
}

func TestRedisStoreVerifyEmptyCode(t *testing.T) {
	store := newTestRedisStore(newMockRedisKV())

	if store.Verify("alice@gct.ac.in", "") {
		t.Error("empty code should never verify")
	}
}

// mockRedisCounter emulates the INCR-with-expiry rate limit script.
type mockRedisCounter struct {
	counts  map[string]int64
	evalErr error
}

func (m *mockRedisCounter) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return redis.NewStatusCmd(ctx)
}

func (m *mockRedisCounter) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	cmd := redis.NewCmd(ctx)
	if m.evalErr != nil {
		cmd.SetErr(m.evalErr)
		return cmd
	}
	m.counts[keys[0]]++
	cmd.SetVal(m.counts[keys[0]])
	return cmd
}

func TestRedisLimiter(t *testing.T) {
	mock := &mockRedisCounter{counts: make(map[string]int64)}
	limiter := &redisLimiter{client: mock, window: time.Minute, max: 2, prefix: "otp:rl:"}

	if !limiter.Allow("alice@gct.ac.in") {
		t.Fatal("first request should be allowed")
	}
	if !limiter.Allow("alice@gct.ac.in") {
		t.Fatal("second request should be allowed")
	}
	if limiter.Allow("alice@gct.ac.in") {
		t.Error("third request within the window should be blocked")
	}
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	mock := &mockRedisCounter{counts: make(map[string]int64), evalErr: errors.New("connection refused")}
	limiter := &redisLimiter{client: mock, window: time.Minute, max: 1, prefix: "otp:rl:"}

	if !limiter.Allow("alice@gct.ac.in") {
		t.Error("a broken limiter should not block requests")
	}
}
