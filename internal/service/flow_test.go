package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oaltun/fief/internal/domain/model"
	apperrors "github.com/oaltun/fief/internal/errors"
	"github.com/oaltun/fief/internal/mocks"
	"github.com/oaltun/fief/internal/ports"
	"github.com/oaltun/fief/internal/testutil"
)

// countingSigner counts Sign invocations so races on token minting are visible.
type countingSigner struct {
	calls atomic.Int64
}

func (s *countingSigner) Sign(ports.SessionTokenClaims) (string, error) {
	n := s.calls.Add(1)
	return "token-" + string(rune('0'+n)), nil
}

func (s *countingSigner) Verify(string) (*ports.SessionTokenClaims, error) {
	return nil, apperrors.Validation("not implemented")
}

func flowTenant() *model.Tenant {
	return testutil.NewTenant().WithID("t1").WithBaseURL("https://auth.example.com").Build()
}

func TestFlowEngine_CreateSessionToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	tenant := flowTenant()
	sess := testutil.NewLoginSession(tenant.ID).Build()

	store := mocks.NewMockLoginSessionStore(ctrl)
	signer := mocks.NewMockTokenSigner(ctrl)

	advanced := *sess
	advanced.Stage = model.StageAuthenticated
	advanced.UserID = testutil.StringPtr("u1")

	store.EXPECT().
		Advance(ctx, sess.ID, model.StageAuthenticated, gomock.Any()).
		Return(&advanced, nil)
	signer.EXPECT().Sign(gomock.Any()).DoAndReturn(
		func(claims ports.SessionTokenClaims) (string, error) {
			assert.Equal(t, "u1", claims.UserID)
			assert.Equal(t, sess.ID, claims.SessionID)
			assert.Equal(t, tenant.ID, claims.TenantID)
			assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
			return "signed-token", nil
		})

	engine := NewFlowEngine(FlowEngineOptions{Sessions: store, Signer: signer})

	result, err := engine.CreateSessionToken(ctx, tenant, sess, "u1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, tenant.ConsentURL(), result.RedirectURL)
	assert.Equal(t, model.StageAuthenticated, result.Session.Stage)
}

func TestFlowEngine_CreateSessionToken_UsesTenantLifetime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	tenant := flowTenant()
	tenant.SessionLifetimeSecs = 600
	sess := testutil.NewLoginSession(tenant.ID).Build()

	store := mocks.NewMockLoginSessionStore(ctrl)
	signer := mocks.NewMockTokenSigner(ctrl)
	store.EXPECT().Advance(ctx, sess.ID, model.StageAuthenticated, gomock.Any()).Return(sess, nil)
	signer.EXPECT().Sign(gomock.Any()).DoAndReturn(
		func(claims ports.SessionTokenClaims) (string, error) {
			assert.InDelta(t, 600, claims.ExpiresAt.Sub(claims.IssuedAt).Seconds(), 1)
			return "tok", nil
		})

	engine := NewFlowEngine(FlowEngineOptions{
		Sessions:      store,
		Signer:        signer,
		TokenLifetime: 24 * time.Hour,
	})

	_, err := engine.CreateSessionToken(ctx, tenant, sess, "u1")
	require.NoError(t, err)
}

func TestFlowEngine_CreateSessionToken_InvalidStates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := NewFlowEngine(FlowEngineOptions{
		Sessions: mocks.NewMockLoginSessionStore(ctrl),
		Signer:   mocks.NewMockTokenSigner(ctrl),
	})
	ctx := context.Background()
	tenant := flowTenant()

	tests := []struct {
		name   string
		tenant *model.Tenant
		sess   *model.LoginSession
	}{
		{
			name:   "nil session",
			tenant: tenant,
			sess:   nil,
		},
		{
			name:   "nil tenant",
			tenant: nil,
			sess:   testutil.NewLoginSession("t1").Build(),
		},
		{
			name:   "session from another tenant",
			tenant: tenant,
			sess:   testutil.NewLoginSession("other-tenant").Build(),
		},
		{
			name:   "stage does not permit binding",
			tenant: tenant,
			sess:   testutil.NewLoginSession(tenant.ID).WithStage(model.StageInitiated).Build(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.CreateSessionToken(ctx, tt.tenant, tt.sess, "u1")
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsInvalidState(err))
		})
	}
}

func TestFlowEngine_CreateSessionToken_ReplayOnTerminalStage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	tenant := flowTenant()

	// No Advance or Sign expectations: a session observed at a terminal stage
	// fails as consumed before the store is touched.
	engine := NewFlowEngine(FlowEngineOptions{
		Sessions: mocks.NewMockLoginSessionStore(ctrl),
		Signer:   mocks.NewMockTokenSigner(ctrl),
	})

	for _, stage := range []model.LoginStage{model.StageAuthenticated, model.StageConsumed} {
		t.Run(string(stage), func(t *testing.T) {
			sess := testutil.NewLoginSession(tenant.ID).WithStage(stage).Build()

			result, err := engine.CreateSessionToken(ctx, tenant, sess, "u1")
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsConsumed(err))
			assert.False(t, apperrors.IsInvalidState(err))
		})
	}
}

func TestFlowEngine_CreateSessionToken_ConsumedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	tenant := flowTenant()
	sess := testutil.NewLoginSession(tenant.ID).Build()

	store := mocks.NewMockLoginSessionStore(ctrl)
	signer := mocks.NewMockTokenSigner(ctrl)
	store.EXPECT().
		Advance(ctx, sess.ID, model.StageAuthenticated, gomock.Any()).
		Return(nil, apperrors.Consumed("Login session has already been used"))
	// No Sign expectation: losing the advance must mint nothing.

	engine := NewFlowEngine(FlowEngineOptions{Sessions: store, Signer: signer})

	result, err := engine.CreateSessionToken(ctx, tenant, sess, "u1")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsConsumed(err))
}

func TestFlowEngine_CreateSessionToken_ExactlyOnce(t *testing.T) {
	ctx := context.Background()
	tenant := flowTenant()

	store := testutil.NewMemorySessionStore()
	sess := testutil.NewLoginSession(tenant.ID).
		WithExpiresAt(time.Now().Add(time.Hour)).
		Build()
	require.NoError(t, store.Create(ctx, sess))

	signer := &countingSigner{}
	engine := NewFlowEngine(FlowEngineOptions{Sessions: store, Signer: signer})

	const attempts = 8
	var (
		wg        sync.WaitGroup
		successes atomic.Int64
		consumed  atomic.Int64
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each request re-reads the session before acting, as the HTTP
			// layer does; all of them observe the registering stage.
			result, err := engine.CreateSessionToken(ctx, tenant, sess, "u1")
			switch {
			case err == nil && result != nil:
				successes.Add(1)
			case apperrors.IsConsumed(err):
				consumed.Add(1)
			default:
				t.Errorf("unexpected outcome: result=%v err=%v", result, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes.Load(), "exactly one request may win")
	assert.Equal(t, int64(attempts-1), consumed.Load(), "all others observe consumption")
	assert.Equal(t, int64(1), signer.calls.Load(), "exactly one token is minted")
}
