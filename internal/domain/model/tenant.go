//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"strings"
	"time"
)

// DefaultSessionLifetime is used when a tenant has no explicit session lifetime configured.
const DefaultSessionLifetime = 24 * time.Hour

// Tenant is an isolated namespace of users and branded flow URLs.
// Tenants are created by tenant administration and are read-only to the
// registration flow. The default tenant lives at the root path; every other
// tenant is addressed by its slug path segment.
type Tenant struct {
	ID                  string    `json:"id"                   db:"id"`
	Name                string    `json:"name"                 db:"name"`
	Slug                string    `json:"slug"                 db:"slug"`
	BaseURL             string    `json:"base_url"             db:"base_url"`
	Default             bool      `json:"default"              db:"is_default"`
	RegistrationAllowed bool      `json:"registration_allowed" db:"registration_allowed"`
	SessionLifetimeSecs int64     `json:"session_lifetime_seconds" db:"session_lifetime_seconds"`
	CreatedAt           time.Time `json:"created_at"           db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"           db:"updated_at"`
}

// PathPrefix returns the URL path prefix owned by the tenant.
// The default tenant owns the root; others own "/<slug>".
func (t *Tenant) PathPrefix() string {
	if t.Default || t.Slug == "" {
		return ""
	}
	return "/" + t.Slug
}

// URLFor builds an absolute flow URL for the given path, relative to the
// tenant's base URL and path prefix.
func (t *Tenant) URLFor(path string) string {
	base := strings.TrimSuffix(t.BaseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + t.PathPrefix() + path
}

// ConsentURL is the redirect target for the consent step that follows a
// successful registration.
func (t *Tenant) ConsentURL() string {
	return t.URLFor("/consent")
}

// SessionLifetime returns the configured session-token lifetime, falling back
// to the service default when unset.
func (t *Tenant) SessionLifetime() time.Duration {
	if t.SessionLifetimeSecs <= 0 {
		return DefaultSessionLifetime
	}
	return time.Duration(t.SessionLifetimeSecs) * time.Second
}
