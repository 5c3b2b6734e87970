package httpx

import (
	"context"

	"github.com/oaltun/fief/internal/domain/model"
)

// tenantKey and loginSessionKey are unexported context key types to avoid
// collisions across packages. Centralized in this file so all
// handlers/middleware use the same keys.
type (
	tenantKey       struct{}
	loginSessionKey struct{}
)

// SetTenantInContext returns a child context that carries the resolved tenant.
// If tenant is nil, the original ctx is returned unchanged.
func SetTenantInContext(ctx context.Context, tenant *model.Tenant) context.Context {
	if tenant == nil {
		return ctx
	}
	return context.WithValue(ctx, tenantKey{}, tenant)
}

// GetTenantFromContext returns the resolved tenant and a boolean indicating presence.
func GetTenantFromContext(ctx context.Context) (*model.Tenant, bool) {
	if tenant, ok := ctx.Value(tenantKey{}).(*model.Tenant); ok && tenant != nil {
		return tenant, true
	}
	return nil, false
}

// SetLoginSessionInContext returns a child context carrying the active login session.
// If sess is nil, the original ctx is returned unchanged.
func SetLoginSessionInContext(ctx context.Context, sess *model.LoginSession) context.Context {
	if sess == nil {
		return ctx
	}
	return context.WithValue(ctx, loginSessionKey{}, sess)
}

// GetLoginSessionFromContext returns the active login session and a boolean indicating presence.
func GetLoginSessionFromContext(ctx context.Context) (*model.LoginSession, bool) {
	if sess, ok := ctx.Value(loginSessionKey{}).(*model.LoginSession); ok && sess != nil {
		return sess, true
	}
	return nil, false
}
