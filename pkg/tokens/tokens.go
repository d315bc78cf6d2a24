// Package tokens holds the in-process registry of opaque bearer tokens.
// Tokens are issued at login and revoked at logout; the whole registry is
// lost on restart, which invalidates every outstanding token.
package tokens

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store maps opaque bearer tokens to user IDs. Implementations must be
// safe for concurrent use by request handlers.
type Store interface {
	// Issue generates a new token for the user and registers it.
	// Multiple live tokens per user are allowed.
	Issue(userID int) string
	// Resolve returns the user ID a token was issued to, or false if the
	// token is unknown, revoked, or expired.
	Resolve(token string) (int, bool)
	// Revoke removes a token. Revoking an unknown token is a no-op.
	Revoke(token string)
}

type entry struct {
	userID   int
	issuedAt time.Time
}

// MemoryStore is the default process-local Store. A zero TTL disables
// expiry; a positive TTL makes Resolve reject and evict tokens older
// than the TTL.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Issue(userID int) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.entries[token] = entry{userID: userID, issuedAt: s.now()}
	s.mu.Unlock()
	return token
}

func (s *MemoryStore) Resolve(token string) (int, bool) {
	s.mu.RLock()
	e, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}
	if s.ttl > 0 && s.now().Sub(e.issuedAt) > s.ttl {
		s.Revoke(token)
		return 0, false
	}
	return e.userID, true
}

func (s *MemoryStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
}
