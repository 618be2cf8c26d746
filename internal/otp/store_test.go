package otp

import (
	"regexp"
	"testing"
	"time"
)

const testDomain = "gct.ac.in"

func TestValidDomain(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"alice@gct.ac.in", true},
		{"ALICE@GCT.AC.IN", true},
		{"alice@gmail.com", false},
		{"alice@fakegct.ac.in.evil.com", false},
		{"", false},
		{"gct.ac.in", false},
	}

	for _, tc := range cases {
		if got := ValidDomain(tc.email, testDomain); got != tc.want {
			t.Errorf("ValidDomain(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestGenerateCodeShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[1-9][0-9]{5}$`)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode returned error: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("GenerateCode returned %q, want six digits without leading zero", code)
		}
	}
}

func TestMemoryStoreRejectsForeignDomain(t *testing.T) {
	store := NewMemoryStore(testDomain, time.Minute)

	if _, err := store.Issue("bob@gmail.com"); err != ErrInvalidDomain {
		t.Errorf("Issue for foreign domain: got %v, want ErrInvalidDomain", err)
	}
}

func TestMemoryStoreVerifyConsumesEntry(t *testing.T) {
	store := NewMemoryStore(testDomain, time.Minute)

	code, err := store.Issue("alice@gct.ac.in")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if !store.Verify("alice@gct.ac.in", code) {
		t.Fatal("first Verify with the right code should succeed")
	}
	if store.Verify("alice@gct.ac.in", code) {
		t.Error("second Verify with the same code should fail")
	}
}

func TestMemoryStoreVerifyIsCaseInsensitiveOnEmail(t *testing.T) {
	store := NewMemoryStore(testDomain, time.Minute)

	code, err := store.Issue("Alice@GCT.ac.in")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if !store.Verify("alice@gct.ac.in", code) {
		t.Error("Verify should match regardless of email case")
	}
}

func TestMemoryStoreMismatchKeepsEntry(t *testing.T) {
	store := NewMemoryStore(testDomain, time.Minute)

	code, err := store.Issue("alice@gct.ac.in")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if store.Verify("alice@gct.ac.in", "000000") {
		t.Fatal("Verify with wrong code should fail")
	}
	if !store.Verify("alice@gct.ac.in", code) {
		t.Error("a wrong guess must not consume the entry")
	}
}

func TestMemoryStoreReissueReplacesCode(t *testing.T) {
	store := NewMemoryStore(testDomain, time.Minute)

	first, err := store.Issue("alice@gct.ac.in")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	second, err := store.Issue("alice@gct.ac.in")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if first != second && store.Verify("alice@gct.ac.in", first) {
		t.Error("reissue should invalidate the previous code")
	}
	if !store.Verify("alice@gct.ac.in", second) {
		t.Error("latest code should verify")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(testDomain, 10*time.Millisecond)

	code, err := store.Issue("alice@gct.ac.in")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if store.Verify("alice@gct.ac.in", code) {
		t.Error("Verify should fail after the TTL has passed")
	}
}

func TestMemoryStorePurgeExpired(t *testing.T) {
	store := NewMemoryStore(testDomain, 10*time.Millisecond)

	if _, err := store.Issue("alice@gct.ac.in"); err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	store.PurgeExpired()

	store.mu.Lock()
	remaining := len(store.entries)
	store.mu.Unlock()

	if remaining != 0 {
		t.Errorf("PurgeExpired left %d entries, want 0", remaining)
	}
}

func TestMemoryLimiter(t *testing.T) {
	limiter := NewMemoryLimiter(time.Minute, 2)

	if !limiter.Allow("alice@gct.ac.in") {
		t.Fatal("first request should be allowed")
	}
	if !limiter.Allow("alice@gct.ac.in") {
		t.Fatal("second request should be allowed")
	}
	if limiter.Allow("alice@gct.ac.in") {
		t.Error("third request within the window should be blocked")
	}
	if !limiter.Allow("bob@gct.ac.in") {
		t.Error("other keys should not be affected")
	}
}

func TestMemoryLimiterRejectsEmptyKey(t *testing.T) {
	limiter := NewMemoryLimiter(time.Minute, 5)

	if limiter.Allow("") {
		t.Error("empty key should never be allowed")
	}
}
