package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oaltun/fief/internal/data/pgxutil"
	"github.com/oaltun/fief/internal/domain/model"
	apperrors "github.com/oaltun/fief/internal/errors"
)

// TenantRepo provides database read access to tenants. Tenant lifecycle is
// owned by tenant administration; the registration flow only resolves them.
type TenantRepo struct {
	DB *sql.DB
}

// NewTenantRepo creates a new TenantRepo.
func NewTenantRepo(db *sql.DB) *TenantRepo {
	return &TenantRepo{DB: db}
}

const tenantColumns = `id, name, slug, base_url, is_default, registration_allowed,
	       session_lifetime_seconds, created_at, updated_at`

const (
	tenantGetBySlugQuery = `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE slug = $1`

	tenantGetDefaultQuery = `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE is_default`

	tenantGetByIDQuery = `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE id = $1`
)

// GetBySlug retrieves a tenant by its URL path slug.
func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	return r.getByQuery(ctx, tenantGetBySlugQuery, "failed to get tenant by slug", slug)
}

// GetDefault retrieves the default tenant (the one serving the root path).
func (r *TenantRepo) GetDefault(ctx context.Context) (*model.Tenant, error) {
	return r.getByQuery(ctx, tenantGetDefaultQuery, "failed to get default tenant")
}

// GetByID retrieves a tenant by ID.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	return r.getByQuery(ctx, tenantGetByIDQuery, "failed to get tenant by ID", id)
}

// getByQuery executes a query and returns a single tenant.
// Uses variadic args to avoid slice allocation at call sites.
func (r *TenantRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.Tenant, error) {
	var tenant model.Tenant
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		tenant, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Tenant])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Unknown tenant")
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &tenant, nil
}
