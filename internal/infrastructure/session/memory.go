package session

import (
	"strings"
	"sync"

	"github.com/riskibarqy/finalpoint-client/internal/domain/user"
)

// MemoryStore keeps the session for the life of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	session user.Session
	clears  int
}

var _ user.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore(initial user.Session) *MemoryStore {
	return &MemoryStore{session: initial}
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.TrimSpace(s.session.Token)
}

func (s *MemoryStore) User() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.session.Valid() {
		return user.User{}, false
	}
	return s.session.User, true
}

func (s *MemoryStore) Save(session user.Session) error {
	if !session.Valid() {
		return ErrEmptyToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = user.Session{}
	s.clears++
	return nil
}

// Clears reports how many times Clear ran.
func (s *MemoryStore) Clears() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clears
}
