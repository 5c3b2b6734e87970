package data

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaltun/fief/internal/domain/model"
	apperrors "github.com/oaltun/fief/internal/errors"
	"github.com/oaltun/fief/internal/testutil"
)

func userParams(tenantID, email string) *model.CreateUserParams {
	return &model.CreateUserParams{
		TenantID:       tenantID,
		Email:          email,
		HashedPassword: "$2a$04$testhashtesthashtesthash",
	}
}

func TestUserRepo_Create(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tenant := testutil.NewTenant().WithSlug("acme").Build()
		insertTestTenant(t, db, tenant)

		repo := NewUserRepoWithTimeProvider(db, NewFixedTimeProvider(testutil.TestTime()))

		params := userParams(tenant.ID, " Anne@Bretagne.DUCHY ")
		params.FirstName = testutil.StringPtr("Anne")

		user, err := repo.Create(ctx, params)
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		assert.Equal(t, tenant.ID, user.TenantID)
		assert.Equal(t, "anne@bretagne.duchy", user.Email, "email is normalized on write")
		require.NotNil(t, user.FirstName)
		assert.Equal(t, "Anne", *user.FirstName)
		assert.Equal(t, testutil.TestTime(), user.CreatedAt.UTC())
	})
}

func TestUserRepo_Create_InvalidParams(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		_, err := repo.Create(ctx, nil)
		assert.Error(t, err)

		_, err = repo.Create(ctx, userParams("", "a@b.c"))
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))

		_, err = repo.Create(ctx, userParams("t1", "not-an-email"))
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tenant := testutil.NewTenant().WithSlug("acme").Build()
		insertTestTenant(t, db, tenant)
		repo := NewUserRepo(db)

		_, err := repo.Create(ctx, userParams(tenant.ID, "anne@bretagne.duchy"))
		require.NoError(t, err)

		// Same address, different case: still a conflict.
		_, err = repo.Create(ctx, userParams(tenant.ID, "ANNE@bretagne.duchy"))
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, "email", apperrors.GetField(err))
	})
}

func TestUserRepo_Create_SameEmailDifferentTenants(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		first := testutil.NewTenant().WithSlug("first").Build()
		second := testutil.NewTenant().WithSlug("second").Build()
		insertTestTenant(t, db, first)
		insertTestTenant(t, db, second)
		repo := NewUserRepo(db)

		_, err := repo.Create(ctx, userParams(first.ID, "anne@bretagne.duchy"))
		require.NoError(t, err)

		// Uniqueness is scoped per tenant.
		_, err = repo.Create(ctx, userParams(second.ID, "anne@bretagne.duchy"))
		assert.NoError(t, err)
	})
}

func TestUserRepo_Create_ConcurrentDuplicates(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tenant := testutil.NewTenant().WithSlug("acme").Build()
		insertTestTenant(t, db, tenant)
		repo := NewUserRepo(db)

		const attempts = 5
		var (
			wg        sync.WaitGroup
			successes atomic.Int64
			conflicts atomic.Int64
		)

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Create(ctx, userParams(tenant.ID, "anne@bretagne.duchy"))
				switch {
				case err == nil:
					successes.Add(1)
				case apperrors.IsConflict(err):
					conflicts.Add(1)
				default:
					t.Errorf("unexpected create error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), successes.Load(), "exactly one row may be written")
		assert.Equal(t, int64(attempts-1), conflicts.Load())

		var count int
		require.NoError(t, db.QueryRowContext(ctx,
			"SELECT count(*) FROM users WHERE tenant_id = $1", tenant.ID).Scan(&count))
		assert.Equal(t, 1, count)
	})
}

func TestUserRepo_GetByEmail(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tenant := testutil.NewTenant().WithSlug("acme").Build()
		insertTestTenant(t, db, tenant)
		repo := NewUserRepo(db)

		created, err := repo.Create(ctx, userParams(tenant.ID, "anne@bretagne.duchy"))
		require.NoError(t, err)

		got, err := repo.GetByEmail(ctx, tenant.ID, "ANNE@Bretagne.Duchy")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)

		_, err = repo.GetByEmail(ctx, tenant.ID, "nobody@bretagne.duchy")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestUserRepo_GetByID(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tenant := testutil.NewTenant().WithSlug("acme").Build()
		insertTestTenant(t, db, tenant)
		repo := NewUserRepo(db)

		created, err := repo.Create(ctx, userParams(tenant.ID, "anne@bretagne.duchy"))
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Email, got.Email)
	})
}
