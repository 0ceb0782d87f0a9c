package domain

import "context"

// SessionStore is the single source of truth for the current Session.
// Load returns (nil, nil) when no session is stored; absence is not an
// error. Implementations must be safe for concurrent use.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}

// Navigator abstracts the navigation surface the gateway redirects through.
// In the terminal shell it swaps screens; in tests it records routes. Replace
// must not stack history (the login redirect is not back-navigable).
type Navigator interface {
	Replace(route string)
	Current() string
}

// TokenService mints and validates backend access tokens.
type TokenService interface {
	GenerateAccessToken(userID, role, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// OTPService manages one-time codes for the phone login flow.
type OTPService interface {
	Generate(ctx context.Context, phone string) (*OTPChallenge, error)
	Verify(ctx context.Context, phone, code string) (bool, error)
	CanResend(ctx context.Context, phone string) (bool, int64, error)
}

// NotificationService delivers one-time codes to staff phones.
type NotificationService interface {
	SendSMS(to, message string) error
}

// StaffDirectory resolves a phone number to a staff identity. Only staff
// accounts may log in through this gateway.
type StaffDirectory interface {
	FindByPhone(ctx context.Context, phone string) (*StaffIdentity, error)
}
