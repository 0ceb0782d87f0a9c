package app

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/STAR-173/prms-admin-gateway/internal/config"
	"github.com/STAR-173/prms-admin-gateway/internal/edge"
	"github.com/STAR-173/prms-admin-gateway/internal/stubapi"
)

// RunEdge starts the edge proxy daemon.
func RunEdge(cfg *config.Config) error {
	r := edge.BuildRouter(cfg)

	addr := ":" + cfg.EdgePort
	log.Printf("edge listening on %s (prefix=%s version=%s backend=%s)",
		addr, cfg.PublicPrefix, cfg.APIVersion, cfg.BackendURL)
	return http.ListenAndServe(addr, r)
}

// RunStub starts the development auth backend.
func RunStub(cfg *config.Config) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	notificationSvc := stubapi.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	otpSvc := stubapi.NewOTPService(notificationSvc, rdb, stubapi.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		ResendWindow: cfg.OTP_ResendWindow,
	})
	tokenSvc := stubapi.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL)
	directory := stubapi.NewStaffDirectory()

	ah := stubapi.NewAuthHandlers(otpSvc, tokenSvc, directory)
	r := stubapi.BuildRouter(ah, tokenSvc)

	addr := ":" + cfg.StubPort
	log.Printf("auth stub listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
