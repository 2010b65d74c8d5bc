package session

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const tokenBytes = 32

// Session is the record behind an opaque login token. It carries display
// identity only; the user's role is deliberately absent and must always be
// re-read from the persistence layer.
type Session struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	FullName  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store maps opaque tokens to active sessions. It is safe for concurrent
// use; the background sweep takes the same lock as request-triggered access.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session

	ttl        time.Duration
	sweepEvery time.Duration
	now        func() time.Time
	logger     *log.Logger

	stopCh  chan struct{}
	stopped sync.WaitGroup
	started bool
}

func NewStore(ttl, sweepEvery time.Duration, logger *log.Logger) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if sweepEvery <= 0 {
		sweepEvery = time.Hour
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		sessions:   make(map[string]Session),
		ttl:        ttl,
		sweepEvery: sweepEvery,
		now:        time.Now,
		logger:     logger,
	}
}

// Create issues a new session and returns its token: 32 bytes from
// crypto/rand, hex-encoded.
func (s *Store) Create(userID uuid.UUID, email, fullName string) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	now := s.now()
	s.mu.Lock()
	s.sessions[token] = Session{
		Token:     token,
		UserID:    userID,
		Email:     email,
		FullName:  fullName,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.mu.Unlock()

	return token, nil
}

// Resolve returns the session for token if it exists and has not expired.
// An expired record is removed on observation (lazy expiry). Absence is a
// normal outcome, not an error.
func (s *Store) Resolve(token string) (Session, bool) {
	if token == "" {
		return Session{}, false
	}

	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}

	if !s.now().Before(sess.ExpiresAt) {
		s.mu.Lock()
		// Re-check under the write lock: the entry may have been replaced.
		if cur, ok := s.sessions[token]; ok && !s.now().Before(cur.ExpiresAt) {
			delete(s.sessions, token)
		}
		s.mu.Unlock()
		return Session{}, false
	}

	return sess, true
}

// Revoke removes the session for token. Revoking an unknown token is a no-op.
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Len reports the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Start launches the periodic sweep that evicts expired sessions abandoned
// without a logout. Calling Start twice is a no-op.
func (s *Store) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	s.stopped.Add(1)
	go func() {
		defer s.stopped.Done()
		ticker := time.NewTicker(s.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the sweep goroutine and waits for it to exit.
func (s *Store) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	close(s.stopCh)
	s.mu.Unlock()

	s.stopped.Wait()
}

func (s *Store) sweep() {
	now := s.now()

	s.mu.Lock()
	removed := 0
	for token, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Printf("[Session] Sweep removed %d expired sessions", removed)
	}
}
