package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/oaltun/fief/internal/domain/model"
	"github.com/oaltun/fief/internal/ports"
)

// TenantResolver maps an inbound request path to the tenant owning it.
// The default tenant serves the root path; every other tenant is addressed by
// its first path segment. Resolution is deterministic and side-effect-free so
// it can be re-invoked safely on retries.
type TenantResolver struct {
	tenants ports.TenantRepository
}

// NewTenantResolver constructs a new TenantResolver.
func NewTenantResolver(tenants ports.TenantRepository) *TenantResolver {
	return &TenantResolver{tenants: tenants}
}

// Resolve returns the tenant for the given request path, or a NotFound
// AppError when no tenant owns it. A request without a resolved tenant must
// not proceed.
func (r *TenantResolver) Resolve(ctx context.Context, path string) (*model.Tenant, error) {
	slug := firstPathSegment(path)
	if slug == "" || isReservedSegment(slug) {
		tenant, err := r.tenants.GetDefault(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve default tenant: %w", err)
		}
		return tenant, nil
	}

	tenant, err := r.tenants.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// firstPathSegment extracts the first segment of a URL path: "/acme/register" → "acme".
func firstPathSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return ""
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

// isReservedSegment reports whether a path segment belongs to the default
// tenant's flow routes rather than naming a sub-tenant.
func isReservedSegment(segment string) bool {
	switch segment {
	case "register", "consent", "healthz":
		return true
	default:
		return false
	}
}
