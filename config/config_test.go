package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("SESSION_SIGNING_KEY", testSigningKey)

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse() error = %v", err)
	}
	cfg.Sanitize()

	if cfg.IsDev {
		t.Error("IsDev should default to false")
	}
	if cfg.Session.LoginSessionTTL != time.Hour {
		t.Errorf("LoginSessionTTL = %v, want 1h", cfg.Session.LoginSessionTTL)
	}
	if cfg.Session.TokenLifetime != 24*time.Hour {
		t.Errorf("TokenLifetime = %v, want 24h", cfg.Session.TokenLifetime)
	}
	if cfg.Session.LoginSessionCookie != "fief_login_session" {
		t.Errorf("LoginSessionCookie = %v", cfg.Session.LoginSessionCookie)
	}
	if cfg.Session.TokenCookie != "fief_session_token" {
		t.Errorf("TokenCookie = %v", cfg.Session.TokenCookie)
	}
	if cfg.Session.MinPasswordLength != 8 {
		t.Errorf("MinPasswordLength = %v, want 8", cfg.Session.MinPasswordLength)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %v, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Name != "fief" {
		t.Errorf("Postgres.Name = %v, want fief", cfg.Postgres.Name)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("Redis.URI = %v, want localhost:6379", cfg.Redis.URI)
	}
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SESSION_SIGNING_KEY", testSigningKey)
	t.Setenv("LOGIN_SESSION_TTL", "30m")
	t.Setenv("SESSION_TOKEN_LIFETIME", "2h")
	t.Setenv("MIN_PASSWORD_LENGTH", "12")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_URI", "redis://cache.internal:6379")
	t.Setenv("DEV", "true")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse() error = %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("IsDev should be true")
	}
	if cfg.Session.LoginSessionTTL != 30*time.Minute {
		t.Errorf("LoginSessionTTL = %v, want 30m", cfg.Session.LoginSessionTTL)
	}
	if cfg.Session.TokenLifetime != 2*time.Hour {
		t.Errorf("TokenLifetime = %v, want 2h", cfg.Session.TokenLifetime)
	}
	if cfg.Session.MinPasswordLength != 12 {
		t.Errorf("MinPasswordLength = %v, want 12", cfg.Session.MinPasswordLength)
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("Postgres.Host = %v", cfg.Postgres.Host)
	}
	if cfg.Redis.URI != "redis://cache.internal:6379" {
		t.Errorf("Redis.URI = %v", cfg.Redis.URI)
	}
}

func TestSessionConfig_SanitizeFloors(t *testing.T) {
	s := SessionConfig{
		LoginSessionTTL:   -time.Minute,
		TokenLifetime:     0,
		MinPasswordLength: 3,
	}
	s.Sanitize()

	if s.LoginSessionTTL != time.Hour {
		t.Errorf("LoginSessionTTL = %v, want 1h floor", s.LoginSessionTTL)
	}
	if s.TokenLifetime != 24*time.Hour {
		t.Errorf("TokenLifetime = %v, want 24h floor", s.TokenLifetime)
	}
	if s.MinPasswordLength != 8 {
		t.Errorf("MinPasswordLength = %v, want 8 floor", s.MinPasswordLength)
	}
	if s.LoginSessionCookie == "" || s.TokenCookie == "" {
		t.Error("cookie names must fall back to defaults")
	}
}
