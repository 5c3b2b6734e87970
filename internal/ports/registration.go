package ports

// Package ports defines interfaces (hexagonal ports) for the registration
// flow. Implementations live in internal/data and internal/adapters;
// orchestration in internal/service.

import (
	"context"

	"github.com/oaltun/fief/internal/domain/model"
)

// TenantRepository reads tenant records. Tenants are managed elsewhere; the
// registration flow only resolves them.
type TenantRepository interface {
	GetBySlug(ctx context.Context, slug string) (*model.Tenant, error)
	GetDefault(ctx context.Context) (*model.Tenant, error)
	GetByID(ctx context.Context, id string) (*model.Tenant, error)
}

// UserRepository persists user accounts. Create must enforce per-tenant email
// uniqueness atomically with the insert; a duplicate surfaces as a Conflict
// AppError, never as a second row.
type UserRepository interface {
	Create(ctx context.Context, params *model.CreateUserParams) (*model.User, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// PasswordPolicy validates candidate passwords. Reject returns a
// human-readable reason suitable for field-level display.
type PasswordPolicy interface {
	Validate(ctx context.Context, password string) error
}
