package mocks

import (
	"sync"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// MockNotificationService implements domain.NotificationService for testing.
type MockNotificationService struct {
	mu          sync.Mutex
	SendSMSFunc func(to, message string) error
	Sent        []SentSMS
}

type SentSMS struct {
	To      string
	Message string
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendSMS(to, message string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentSMS{To: to, Message: message})
	m.mu.Unlock()
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}

var _ domain.NotificationService = (*MockNotificationService)(nil)
