package stubapi

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// OTPService issues and checks one-time codes, backed by Redis. Codes are
// keyed by phone alone: at request time the caller is anonymous, there is no
// user ID to scope by yet.
type OTPService struct {
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	config          OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

func NewOTPService(notificationSvc domain.NotificationService, redisClient *redis.Client, config OTPConfig) *OTPService {
	if config.Length == 0 {
		config.Length = 6
	}
	return &OTPService{
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		config:          config,
	}
}

// Generate creates a code for the phone, stores it with a TTL and delivers
// it by SMS. Resend attempts inside the throttle window are rejected.
func (s *OTPService) Generate(ctx context.Context, phone string) (*domain.OTPChallenge, error) {
	otpKey := fmt.Sprintf("otp:%s", phone)
	resendKey := fmt.Sprintf("otp:res:%s", phone)
	attemptsKey := fmt.Sprintf("otp:att:%s", phone)

	if canResend, waitTime, _ := s.CanResend(ctx, phone); !canResend {
		return nil, fmt.Errorf("please wait %d seconds before requesting a new code", waitTime)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	if err := s.redisClient.Set(ctx, otpKey, code, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store OTP in Redis: %w", err)
	}
	if err := s.redisClient.Set(ctx, attemptsKey, 0, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to initialize attempts counter: %w", err)
	}
	if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	challenge := &domain.OTPChallenge{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(s.config.TTL),
		Attempts:  0,
	}

	message := fmt.Sprintf("Your PRMS verification code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		s.redisClient.Del(ctx, otpKey, attemptsKey, resendKey)
		return nil, fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	return challenge, nil
}

// Verify checks a submitted code, counting attempts atomically and wiping
// the challenge once it is either used up or matched.
func (s *OTPService) Verify(ctx context.Context, phone, code string) (bool, error) {
	otpKey := fmt.Sprintf("otp:%s", phone)
	attemptsKey := fmt.Sprintf("otp:att:%s", phone)

	attempts, err := s.redisClient.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment attempts: %w", err)
	}

	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, otpKey, attemptsKey)
		return false, domain.ErrOTPMaxAttempts
	}

	storedCode, err := s.redisClient.Get(ctx, otpKey).Result()
	if err == redis.Nil {
		return false, domain.ErrOTPNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to get OTP from Redis: %w", err)
	}

	if storedCode != code {
		return false, domain.ErrOTPInvalid
	}

	s.redisClient.Del(ctx, otpKey, attemptsKey)
	return true, nil
}

// CanResend reports whether the throttle window for the phone has lapsed.
func (s *OTPService) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	resendKey := fmt.Sprintf("otp:res:%s", phone)

	ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	if ttl <= 0 {
		return true, 0, nil
	}
	return false, int64(ttl.Seconds()), nil
}

func (s *OTPService) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

var _ domain.OTPService = (*OTPService)(nil)
