package domain

import "errors"

// Validation errors (caught client-side, never reach the network)
var (
	ErrPhoneLength = errors.New("phone number must be exactly 10 digits")
	ErrCodeLength  = errors.New("verification code must be exactly 6 digits")
)

// Flow errors
var (
	ErrRequestInFlight = errors.New("a request is already in flight")
	ErrWrongStep       = errors.New("action not valid in the current step")
)

// Authentication errors
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotStaff      = errors.New("account is not a staff account")
	ErrStaffNotFound = errors.New("no staff account for this phone number")
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)
