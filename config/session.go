package config

import "time"

// SessionConfig groups login-session and session-token configuration.
type SessionConfig struct {
	// SigningKey is the HMAC key used to sign session tokens.
	// Must be at least 32 bytes for HS256.
	SigningKey string `env:"SESSION_SIGNING_KEY,required"`

	// LoginSessionTTL is how long an in-progress authentication attempt stays
	// valid before the visitor must restart the flow.
	LoginSessionTTL time.Duration `env:"LOGIN_SESSION_TTL" envDefault:"1h"`

	// TokenLifetime is the default session-token lifetime applied when a
	// tenant does not configure its own.
	TokenLifetime time.Duration `env:"SESSION_TOKEN_LIFETIME" envDefault:"24h"`

	// LoginSessionCookie is the cookie name carrying the login session identifier.
	LoginSessionCookie string `env:"LOGIN_SESSION_COOKIE" envDefault:"fief_login_session"`

	// TokenCookie is the cookie name carrying the issued session token.
	TokenCookie string `env:"SESSION_TOKEN_COOKIE" envDefault:"fief_session_token"`

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength int `env:"MIN_PASSWORD_LENGTH" envDefault:"8"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.LoginSessionTTL <= 0 {
		s.LoginSessionTTL = time.Hour
	}
	if s.TokenLifetime <= 0 {
		s.TokenLifetime = 24 * time.Hour
	}
	if s.LoginSessionCookie == "" {
		s.LoginSessionCookie = "fief_login_session"
	}
	if s.TokenCookie == "" {
		s.TokenCookie = "fief_session_token"
	}
	const minPasswordFloor = 8
	if s.MinPasswordLength < minPasswordFloor {
		s.MinPasswordLength = minPasswordFloor
	}
}
