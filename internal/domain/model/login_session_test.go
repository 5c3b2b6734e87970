//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginStage_Terminal(t *testing.T) {
	tests := []struct {
		stage LoginStage
		want  bool
	}{
		{StageInitiated, false},
		{StageRegistering, false},
		{StageAuthenticated, true},
		{StageConsumed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stage.Terminal())
		})
	}
}

func TestLoginSession_Expired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	live := LoginSession{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, live.Expired(now))

	past := LoginSession{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, past.Expired(now))

	// Exactly at expiry is still considered live.
	edge := LoginSession{ExpiresAt: now}
	assert.False(t, edge.Expired(now))
}

func TestLoginSession_CanBind(t *testing.T) {
	assert.True(t, LoginSession{Stage: StageRegistering}.CanBind())
	assert.False(t, LoginSession{Stage: StageInitiated}.CanBind())
	assert.False(t, LoginSession{Stage: StageAuthenticated}.CanBind())
	assert.False(t, LoginSession{Stage: StageConsumed}.CanBind())
}
