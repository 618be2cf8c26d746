package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
)

// ErrInvalidDomain is returned when an address is outside the institutional
// email domain.
var ErrInvalidDomain = errors.New("email outside institutional domain")

// Store issues and verifies short-lived six-digit codes bound to an email
// address. Implementations must be safe for concurrent use; two concurrent
// Verify calls for the same address must not both succeed.
type Store interface {
	// Issue generates a fresh code for the address, replacing any existing
	// entry, and returns it. Delivery is the caller's concern.
	Issue(email string) (string, error)

	// Verify consumes the entry on a match. Absent or expired entries
	// verify false; a mismatch leaves the entry in place so the caller can
	// retry until expiry.
	Verify(email, code string) bool

	// PurgeExpired removes entries whose expiry has passed. Verify checks
	// expiry on its own, so this only bounds memory.
	PurgeExpired()
}

// ValidDomain reports whether the address belongs to the institutional
// domain (case-insensitive suffix match).
func ValidDomain(email, domain string) bool {
	if email == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(domain))
}

// GenerateCode returns a uniformly random six-digit code (100000-999999).
// Also used for mentor verification codes, which share the same shape.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", 100000+n.Int64()), nil
}

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is the default Store: a mutex-guarded map keyed by lowercased
// email. Expired entries are deleted lazily at verify time or by a
// PurgeExpired sweep.
type MemoryStore struct {
	mu      sync.Mutex
	domain  string
	ttl     time.Duration
	entries map[string]entry
}

func NewMemoryStore(domain string, ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &MemoryStore{
		domain:  domain,
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

func (s *MemoryStore) Issue(email string) (string, error) {
	if !ValidDomain(email, s.domain) {
		return "", ErrInvalidDomain
	}
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.entries[strings.ToLower(email)] = entry{
		code:      code,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return code, nil
}

func (s *MemoryStore) Verify(email, code string) bool {
	key := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return false
	}
	if e.code != code {
		return false
	}
	delete(s.entries, key)
	return true
}

func (s *MemoryStore) PurgeExpired() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}
