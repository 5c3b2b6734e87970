package ports

import (
	"context"
	"time"

	"github.com/oaltun/fief/internal/domain/model"
)

// LoginSessionStore persists and advances login sessions. The store is the
// only shared mutable resource in the flow; Advance must serialize concurrent
// transitions on the same session id so that at most one advance to a terminal
// stage succeeds.
type LoginSessionStore interface {
	// Get returns the session, failing with a NotFound AppError when the id is
	// unknown and an Expired AppError when it is past its expiry.
	Get(ctx context.Context, id string) (*model.LoginSession, error)

	// Create stores a new session. Used by the upstream authorize step and tests.
	Create(ctx context.Context, sess *model.LoginSession) error

	// Advance atomically transitions the session's stage, optionally binding a
	// user. It fails with a Consumed AppError when the session already reached
	// a terminal stage, and with NotFound when the record vanished.
	Advance(ctx context.Context, id string, stage model.LoginStage, userID *string) (*model.LoginSession, error)

	// Delete removes a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// SessionTokenClaims is what a signed session token attests to: a specific
// user completed authentication within a specific login session of a tenant.
type SessionTokenClaims struct {
	UserID    string
	SessionID string
	TenantID  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenSigner mints and verifies signed session tokens.
type TokenSigner interface {
	Sign(claims SessionTokenClaims) (string, error)
	Verify(token string) (*SessionTokenClaims, error)
}
