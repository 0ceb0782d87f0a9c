package mocks

import (
	"sync"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// MockNavigator implements domain.Navigator for testing, recording every
// Replace so tests can assert on redirect counts.
type MockNavigator struct {
	mu       sync.Mutex
	current  string
	Replaced []string
}

func NewMockNavigator(initial string) *MockNavigator {
	return &MockNavigator{current: initial}
}

func (m *MockNavigator) Replace(route string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replaced = append(m.Replaced, route)
	m.current = route
}

func (m *MockNavigator) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// ReplaceCount returns how many redirects occurred.
func (m *MockNavigator) ReplaceCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Replaced)
}

var _ domain.Navigator = (*MockNavigator)(nil)
