package session

import (
	"context"
	"sync"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// MemoryStore keeps the session in process memory. Used by tests and by
// short-lived invocations that should not leave a token on disk.
type MemoryStore struct {
	mu      sync.RWMutex
	session *domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.session = &copied
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

var _ domain.SessionStore = (*MemoryStore)(nil)
