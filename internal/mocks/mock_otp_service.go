package mocks

import (
	"context"
	"time"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// MockOTPService implements domain.OTPService for testing.
type MockOTPService struct {
	GenerateFunc  func(ctx context.Context, phone string) (*domain.OTPChallenge, error)
	VerifyFunc    func(ctx context.Context, phone, code string) (bool, error)
	CanResendFunc func(ctx context.Context, phone string) (bool, int64, error)
}

func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Generate(ctx context.Context, phone string) (*domain.OTPChallenge, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, phone)
	}
	return &domain.OTPChallenge{
		Phone:     phone,
		Code:      "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil
}

func (m *MockOTPService) Verify(ctx context.Context, phone, code string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phone, code)
	}
	if code == "123456" {
		return true, nil
	}
	return false, domain.ErrOTPInvalid
}

func (m *MockOTPService) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, phone)
	}
	return true, 0, nil
}

var _ domain.OTPService = (*MockOTPService)(nil)
