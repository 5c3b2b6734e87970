package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oaltun/fief/internal/domain/model"
	apperrors "github.com/oaltun/fief/internal/errors"
	"github.com/oaltun/fief/internal/mocks"
)

func TestTenantResolver_Resolve_DefaultTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := mocks.NewMockTenantRepository(ctrl)
	resolver := NewTenantResolver(repo)

	primary := &model.Tenant{ID: "t1", Slug: "primary", Default: true}

	tests := []struct {
		name string
		path string
	}{
		{"root path", "/"},
		{"empty path", ""},
		{"root register route", "/register"},
		{"root consent route", "/consent"},
		{"health route", "/healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.EXPECT().GetDefault(ctx).Return(primary, nil)

			tenant, err := resolver.Resolve(ctx, tt.path)
			require.NoError(t, err)
			assert.Equal(t, primary, tenant)
		})
	}
}

func TestTenantResolver_Resolve_BySlug(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := mocks.NewMockTenantRepository(ctrl)
	resolver := NewTenantResolver(repo)

	acme := &model.Tenant{ID: "t2", Slug: "acme"}
	repo.EXPECT().GetBySlug(ctx, "acme").Return(acme, nil).Times(2)

	tenant, err := resolver.Resolve(ctx, "/acme/register")
	require.NoError(t, err)
	assert.Equal(t, acme, tenant)

	// A bare slug resolves the same way.
	tenant, err = resolver.Resolve(ctx, "/acme")
	require.NoError(t, err)
	assert.Equal(t, acme, tenant)
}

func TestTenantResolver_Resolve_UnknownSlug(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := mocks.NewMockTenantRepository(ctrl)
	resolver := NewTenantResolver(repo)

	repo.EXPECT().GetBySlug(ctx, "ghost").Return(nil, apperrors.NotFound("Unknown tenant"))

	tenant, err := resolver.Resolve(ctx, "/ghost/register")
	require.Error(t, err)
	assert.Nil(t, tenant)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFirstPathSegment(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/acme/register", "acme"},
		{"/acme", "acme"},
		{"/", ""},
		{"", ""},
		{"/register", "register"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, firstPathSegment(tt.path), "path %q", tt.path)
	}
}
