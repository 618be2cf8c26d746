package otp

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Compare-and-delete so two concurrent Verify calls for the same address
// cannot both consume the entry.
const redisVerifyScript = `
local v = redis.call("GET", KEYS[1])
if v == ARGV[1] then
  redis.call("DEL", KEYS[1])
  return 1
end
return 0
`

type redisCmdable interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisStore keeps OTP entries in redis with a native TTL, so expiry needs
// no sweeping at all.
type RedisStore struct {
	client redisCmdable
	domain string
	ttl    time.Duration
	prefix string
}

func NewRedisStore(client *redis.Client, domain string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStore{
		client: client,
		domain: domain,
		ttl:    ttl,
		prefix: "otp:code:",
	}
}

func (s *RedisStore) key(email string) string {
	return s.prefix + strings.ToLower(email)
}

func (s *RedisStore) Issue(email string) (string, error) {
	if !ValidDomain(email, s.domain) {
		return "", ErrInvalidDomain
	}
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.client.Set(ctx, s.key(email), code, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

func (s *RedisStore) Verify(email, code string) bool {
	if code == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := s.client.Eval(ctx, redisVerifyScript, []string{s.key(email)}, code).Int64()
	if err != nil {
		log.Printf("OTP verify against redis failed: %v", err)
		return false
	}
	return n == 1
}

// PurgeExpired is a no-op: redis expires entries itself.
func (s *RedisStore) PurgeExpired() {}
