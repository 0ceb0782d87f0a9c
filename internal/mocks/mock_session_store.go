package mocks

import (
	"context"
	"sync"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// MockSessionStore implements domain.SessionStore for testing. Without
// overrides it behaves like an in-memory store and counts calls.
type MockSessionStore struct {
	mu      sync.Mutex
	session *domain.Session

	SaveFunc  func(ctx context.Context, session *domain.Session) error
	LoadFunc  func(ctx context.Context) (*domain.Session, error)
	ClearFunc func(ctx context.Context) error

	SaveCalls  int
	LoadCalls  int
	ClearCalls int
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

func (m *MockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	m.SaveCalls++
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.session = &copied
	return nil
}

func (m *MockSessionStore) Load(ctx context.Context) (*domain.Session, error) {
	m.mu.Lock()
	m.LoadCalls++
	m.mu.Unlock()
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	copied := *m.session
	return &copied, nil
}

func (m *MockSessionStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// Current returns the stored session without counting a Load.
func (m *MockSessionStore) Current() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

var _ domain.SessionStore = (*MockSessionStore)(nil)
