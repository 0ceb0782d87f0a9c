package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type EdgeConfig struct {
	Port         int    `yaml:"port"`
	GinMode      string `yaml:"gin_mode"`
	PublicPrefix string `yaml:"public_prefix"`
	APIVersion   string `yaml:"api_version"`
	BackendURL   string `yaml:"backend_url"`
}

type GatewayConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type SessionConfig struct {
	Store string `yaml:"store"`
	File  string `yaml:"file"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type StubConfig struct {
	Port int `yaml:"port"`
}

type ConfigFile struct {
	Edge    EdgeConfig    `yaml:"edge"`
	Gateway GatewayConfig `yaml:"gateway"`
	Session SessionConfig `yaml:"session"`
	Redis   RedisConfig   `yaml:"redis"`
	JWT     JWTConfig     `yaml:"jwt"`
	OTP     OTPConfig     `yaml:"otp"`
	Twilio  TwilioConfig  `yaml:"twilio"`
	Stub    StubConfig    `yaml:"stub"`
}

type Config struct {
	EdgePort         string
	GinMode          string
	PublicPrefix     string
	APIVersion       string
	BackendURL       string
	GatewayBaseURL   string
	GatewayTimeout   time.Duration
	SessionStore     string
	SessionFile      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	AccessTTL        time.Duration
	OTP_TTL          time.Duration
	OTP_Length       int
	OTP_MaxAttempts  int
	OTP_ResendWindow time.Duration
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
	StubPort         string
}

// BackendURLEnv names the environment variable consulted per request by the
// edge rewriter. It intentionally wins over the yaml default so one build
// artifact can be pointed at different backends at deploy time.
const BackendURLEnv = "BACKEND_INTERNAL_URL"

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	timeout, err := time.ParseDuration(orDefault(configFile.Gateway.Timeout, "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	accTTL, err := time.ParseDuration(orDefault(configFile.JWT.AccessTTL, "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(orDefault(configFile.OTP.TTL, "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(orDefault(configFile.OTP.ResendWindow, "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	return &Config{
		EdgePort:         fmt.Sprintf("%d", configFile.Edge.Port),
		GinMode:          configFile.Edge.GinMode,
		PublicPrefix:     orDefault(configFile.Edge.PublicPrefix, "/api"),
		APIVersion:       orDefault(configFile.Edge.APIVersion, "v1"),
		BackendURL:       env(BackendURLEnv, configFile.Edge.BackendURL),
		GatewayBaseURL:   configFile.Gateway.BaseURL,
		GatewayTimeout:   timeout,
		SessionStore:     orDefault(configFile.Session.Store, "file"),
		SessionFile:      configFile.Session.File,
		RedisAddr:        configFile.Redis.Addr,
		RedisPassword:    configFile.Redis.Password,
		RedisDB:          configFile.Redis.DB,
		JWTSecret:        env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:        configFile.JWT.Issuer,
		AccessTTL:        accTTL,
		OTP_TTL:          otpTTL,
		OTP_Length:       configFile.OTP.Length,
		OTP_MaxAttempts:  configFile.OTP.MaxAttempts,
		OTP_ResendWindow: resWnd,
		TwilioSID:        env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:      env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:       env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		StubPort:         fmt.Sprintf("%d", configFile.Stub.Port),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
