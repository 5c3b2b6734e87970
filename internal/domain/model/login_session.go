package model

import "time"

// LoginStage is the login session's position in the authentication sequence.
type LoginStage string

const (
	// StageInitiated: the session was created by the upstream authorize step.
	StageInitiated LoginStage = "initiated"
	// StageRegistering: the visitor is on the registration form. Re-entrant on
	// validation failure.
	StageRegistering LoginStage = "registering"
	// StageAuthenticated: a session token was issued and a user bound. Terminal
	// for this core.
	StageAuthenticated LoginStage = "authenticated"
	// StageConsumed: the consent step (or a later one) finished the flow.
	StageConsumed LoginStage = "consumed"
)

// Terminal reports whether the stage permits no further advance by this core.
func (s LoginStage) Terminal() bool {
	return s == StageAuthenticated || s == StageConsumed
}

// LoginSession is the server-side record tracking one in-progress
// authentication attempt across requests. It is never shared across tenants.
type LoginSession struct {
	ID       string     `json:"id"`
	TenantID string     `json:"tenant_id"`
	Stage    LoginStage `json:"stage"`
	UserID   *string    `json:"user_id,omitempty"`

	// Parameters carried from the upstream authorize request. Opaque to the
	// registration flow but preserved across stage transitions.
	ResponseType string `json:"response_type,omitempty"`
	RedirectURI  string `json:"redirect_uri,omitempty"`
	State        string `json:"state,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s LoginSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// CanBind reports whether the session's stage permits binding a user and
// issuing a session token.
func (s LoginSession) CanBind() bool {
	return s.Stage == StageRegistering
}
