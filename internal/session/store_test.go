package session

import (
	"log"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *time.Time) {
	t.Helper()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current := base

	s := NewStore(ttl, time.Hour, log.Default())
	s.now = func() time.Time { return current }
	return s, &current
}

func TestStore_Create_TokenShape(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)

	token, err := s.Create(uuid.New(), "a@example.com", "A")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(token) != tokenBytes*2 {
		t.Fatalf("expected %d hex chars, got %d", tokenBytes*2, len(token))
	}

	other, err := s.Create(uuid.New(), "b@example.com", "B")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token == other {
		t.Fatalf("expected distinct tokens")
	}
}

func TestStore_Resolve_UnknownToken(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)

	if _, ok := s.Resolve("no-such-token"); ok {
		t.Fatalf("expected miss for unknown token")
	}
	if _, ok := s.Resolve(""); ok {
		t.Fatalf("expected miss for empty token")
	}
}

func TestStore_Resolve_JustBeforeExpiry(t *testing.T) {
	s, current := newTestStore(t, time.Hour)
	userID := uuid.New()

	token, err := s.Create(userID, "a@example.com", "A")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	*current = current.Add(time.Hour - time.Second)
	sess, ok := s.Resolve(token)
	if !ok {
		t.Fatalf("expected session to still be valid")
	}
	if sess.UserID != userID {
		t.Fatalf("unexpected user id")
	}
}

func TestStore_Resolve_AtExpiryIsLazyDeleted(t *testing.T) {
	s, current := newTestStore(t, time.Hour)

	token, err := s.Create(uuid.New(), "a@example.com", "A")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Expiry boundary is exclusive: at ExpiresAt the session is gone.
	*current = current.Add(time.Hour)
	if _, ok := s.Resolve(token); ok {
		t.Fatalf("expected session to be expired")
	}
	if s.Len() != 0 {
		t.Fatalf("expected lazy expiry to remove the record, len=%d", s.Len())
	}
}

func TestStore_Revoke_Idempotent(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)

	token, err := s.Create(uuid.New(), "a@example.com", "A")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	s.Revoke(token)
	if _, ok := s.Resolve(token); ok {
		t.Fatalf("expected revoked session to be gone")
	}
	s.Revoke(token)
	s.Revoke("never-existed")
}

func TestStore_Sweep_RemovesOnlyExpired(t *testing.T) {
	s, current := newTestStore(t, time.Hour)

	expired, err := s.Create(uuid.New(), "old@example.com", "Old")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	*current = current.Add(30 * time.Minute)
	live, err := s.Create(uuid.New(), "new@example.com", "New")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	*current = current.Add(31 * time.Minute)
	s.sweep()

	if _, ok := s.Resolve(expired); ok {
		t.Fatalf("expected expired session to be swept")
	}
	if _, ok := s.Resolve(live); !ok {
		t.Fatalf("expected live session to survive the sweep")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 remaining session, got %d", s.Len())
	}
}

func TestStore_StartStop(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)

	s.Start()
	s.Start() // second call must be a no-op
	s.Stop()
	s.Stop()
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := s.Create(uuid.New(), "c@example.com", "C")
			if err != nil {
				t.Errorf("unexpected err: %v", err)
				return
			}
			if _, ok := s.Resolve(token); !ok {
				t.Errorf("expected freshly created session to resolve")
			}
			s.Revoke(token)
		}()
	}
	wg.Wait()

	if s.Len() != 0 {
		t.Fatalf("expected empty store, len=%d", s.Len())
	}
}
