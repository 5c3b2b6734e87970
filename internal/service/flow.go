package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oaltun/fief/internal/domain/model"
	apperrors "github.com/oaltun/fief/internal/errors"
	"github.com/oaltun/fief/internal/ports"
)

// FlowEngineOptions groups dependencies for FlowEngine.
type FlowEngineOptions struct {
	Sessions ports.LoginSessionStore
	Signer   ports.TokenSigner
	Logger   *slog.Logger

	// TokenLifetime is the fallback session-token lifetime for tenants without
	// their own; zero means model.DefaultSessionLifetime.
	TokenLifetime time.Duration
}

// FlowEngine advances a login session to its authenticated stage and mints
// the session token proving the user completed authentication within it.
// Token issuance is exactly-once per login session: the store's atomic
// advance is performed before signing, so a lost race mints nothing.
type FlowEngine struct {
	sessions ports.LoginSessionStore
	signer   ports.TokenSigner
	logger   *slog.Logger
	lifetime time.Duration
}

// NewFlowEngine constructs a new FlowEngine.
func NewFlowEngine(opts FlowEngineOptions) *FlowEngine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lifetime := opts.TokenLifetime
	if lifetime <= 0 {
		lifetime = model.DefaultSessionLifetime
	}
	return &FlowEngine{
		sessions: opts.Sessions,
		signer:   opts.Signer,
		logger:   logger,
		lifetime: lifetime,
	}
}

// SessionTokenResult carries everything the transport layer needs to attach
// the token and continue the flow.
type SessionTokenResult struct {
	Token       string
	ExpiresAt   time.Time
	RedirectURL string
	Session     *model.LoginSession
}

// CreateSessionToken binds the user to the session, advances it to the
// authenticated stage, and mints the signed token. The consent-step URL of
// the session's tenant is the next redirect target.
//
// Failure modes:
//   - Consumed AppError when the session already reached a terminal stage,
//     whether observed up front (a replay) or inside the store's atomic
//     advance (a lost race); fatal, and no second token is minted.
//   - InvalidState AppError when a non-terminal stage does not permit
//     binding; this is an ordering bug and is logged as an integrity
//     violation.
func (e *FlowEngine) CreateSessionToken(
	ctx context.Context,
	tenant *model.Tenant,
	sess *model.LoginSession,
	userID string,
) (*SessionTokenResult, error) {
	if sess == nil {
		return nil, apperrors.InvalidState("no active login session")
	}
	if tenant == nil || tenant.ID != sess.TenantID {
		return nil, apperrors.InvalidState("login session does not belong to the resolved tenant")
	}
	if !sess.CanBind() {
		if sess.Stage.Terminal() {
			// Replay: an earlier request already finished this session. Same
			// outcome as losing the race inside Advance.
			return nil, apperrors.Consumed("Login session was already consumed")
		}
		e.logger.ErrorContext(ctx, "flow integrity violation: session stage does not permit binding",
			"session_id", sess.ID,
			"stage", string(sess.Stage),
		)
		return nil, apperrors.InvalidState("login session is not awaiting registration")
	}

	advanced, err := e.sessions.Advance(ctx, sess.ID, model.StageAuthenticated, &userID)
	if err != nil {
		if apperrors.IsConsumed(err) {
			// Replay or race: the other request won. Surface as fatal; minting
			// a second token here would break single-use semantics.
			return nil, err
		}
		return nil, fmt.Errorf("advance login session: %w", err)
	}

	now := time.Now()
	lifetime := e.lifetime
	if tenant.SessionLifetimeSecs > 0 {
		lifetime = tenant.SessionLifetime()
	}
	expiresAt := now.Add(lifetime)

	token, err := e.signer.Sign(ports.SessionTokenClaims{
		UserID:    userID,
		SessionID: sess.ID,
		TenantID:  sess.TenantID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("mint session token: %w", err)
	}

	return &SessionTokenResult{
		Token:       token,
		ExpiresAt:   expiresAt,
		RedirectURL: tenant.ConsentURL(),
		Session:     advanced,
	}, nil
}
