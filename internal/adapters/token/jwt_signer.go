package token

// Package token implements session-token signing with HMAC-signed JWTs.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/oaltun/fief/internal/ports"
)

const minKeyLen = 32

// JWTSigner mints and verifies HS256 session tokens. The token binds a user
// to the login session and tenant it authenticated in.
type JWTSigner struct {
	key []byte
}

// NewJWTSigner constructs a JWTSigner. The key must be at least 32 bytes.
func NewJWTSigner(key []byte) (*JWTSigner, error) {
	if len(key) < minKeyLen {
		return nil, errors.New("session token signing key must be at least 32 bytes")
	}
	return &JWTSigner{key: key}, nil
}

// Sign mints a signed session token for the given claims.
func (s *JWTSigner) Sign(claims ports.SessionTokenClaims) (string, error) {
	if claims.UserID == "" {
		return "", errors.New("token subject is required")
	}
	if claims.SessionID == "" || claims.TenantID == "" {
		return "", errors.New("token session and tenant bindings are required")
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": claims.UserID,
		"sid": claims.SessionID,
		"tid": claims.TenantID,
		"iat": claims.IssuedAt.Unix(),
		"exp": claims.ExpiresAt.Unix(),
		"jti": uuid.NewString(),
	})
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token, returning its claims.
func (s *JWTSigner) Verify(token string) (*ports.SessionTokenClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session token")
	}

	sub, _ := claims["sub"].(string)
	sid, _ := claims["sid"].(string)
	tid, _ := claims["tid"].(string)
	if sub == "" || sid == "" || tid == "" {
		return nil, errors.New("session token is missing required claims")
	}

	out := &ports.SessionTokenClaims{
		UserID:    sub,
		SessionID: sid,
		TenantID:  tid,
	}
	if iat, iatErr := claims.GetIssuedAt(); iatErr == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if !out.ExpiresAt.IsZero() && time.Now().After(out.ExpiresAt) {
		return nil, errors.New("session token has expired")
	}
	return out, nil
}
