package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/oaltun/fief/internal/domain/model"
)

// TenantBuilder provides a fluent interface for building Tenant objects for testing.
type TenantBuilder struct {
	tenant *model.Tenant
}

// NewTenant creates a new TenantBuilder with sensible defaults.
func NewTenant() *TenantBuilder {
	now := TestTime()
	return &TenantBuilder{
		tenant: &model.Tenant{
			ID:                     uuid.NewString(),
			Name:                   "Acme",
			Slug:                   "acme",
			BaseURL:                "https://acme.fief.dev",
			Default:             false,
			RegistrationAllowed: true,
			SessionLifetimeSecs: 86400,
			CreatedAt:           now,
			UpdatedAt:           now,
		},
	}
}

// WithID sets the tenant ID.
func (b *TenantBuilder) WithID(id string) *TenantBuilder {
	b.tenant.ID = id
	return b
}

// WithName sets the tenant name.
func (b *TenantBuilder) WithName(name string) *TenantBuilder {
	b.tenant.Name = name
	return b
}

// WithSlug sets the tenant slug.
func (b *TenantBuilder) WithSlug(slug string) *TenantBuilder {
	b.tenant.Slug = slug
	return b
}

// WithBaseURL sets the tenant base URL.
func (b *TenantBuilder) WithBaseURL(baseURL string) *TenantBuilder {
	b.tenant.BaseURL = baseURL
	return b
}

// AsDefault marks the tenant as the workspace default.
func (b *TenantBuilder) AsDefault() *TenantBuilder {
	b.tenant.Default = true
	return b
}

// WithRegistrationAllowed sets whether self-registration is allowed.
func (b *TenantBuilder) WithRegistrationAllowed(allowed bool) *TenantBuilder {
	b.tenant.RegistrationAllowed = allowed
	return b
}

// WithSessionLifetimeSecs sets the per-tenant session lifetime.
func (b *TenantBuilder) WithSessionLifetimeSecs(secs int64) *TenantBuilder {
	b.tenant.SessionLifetimeSecs = secs
	return b
}

// Build returns the constructed Tenant.
func (b *TenantBuilder) Build() *model.Tenant {
	t := *b.tenant
	return &t
}

// LoginSessionBuilder provides a fluent interface for building LoginSession objects for testing.
type LoginSessionBuilder struct {
	sess *model.LoginSession
}

// NewLoginSession creates a new LoginSessionBuilder with sensible defaults.
func NewLoginSession(tenantID string) *LoginSessionBuilder {
	now := TestTime()
	return &LoginSessionBuilder{
		sess: &model.LoginSession{
			ID:           uuid.NewString(),
			TenantID:     tenantID,
			Stage:        model.StageRegistering,
			ResponseType: "code",
			RedirectURI:  "https://app.example.com/callback",
			State:        "xyzzy",
			CreatedAt:    now,
			ExpiresAt:    now.Add(time.Hour),
		},
	}
}

// WithID sets the session ID.
func (b *LoginSessionBuilder) WithID(id string) *LoginSessionBuilder {
	b.sess.ID = id
	return b
}

// WithStage sets the flow stage.
func (b *LoginSessionBuilder) WithStage(stage model.LoginStage) *LoginSessionBuilder {
	b.sess.Stage = stage
	return b
}

// WithUserID binds a user to the session.
func (b *LoginSessionBuilder) WithUserID(userID string) *LoginSessionBuilder {
	b.sess.UserID = &userID
	return b
}

// WithExpiresAt sets the session expiry.
func (b *LoginSessionBuilder) WithExpiresAt(expiresAt time.Time) *LoginSessionBuilder {
	b.sess.ExpiresAt = expiresAt
	return b
}

// Expired marks the session as already expired relative to TestTime.
func (b *LoginSessionBuilder) Expired() *LoginSessionBuilder {
	b.sess.ExpiresAt = TestTime().Add(-time.Minute)
	return b
}

// Build returns the constructed LoginSession.
func (b *LoginSessionBuilder) Build() *model.LoginSession {
	s := *b.sess
	return &s
}
