package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaltun/fief/internal/ports"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

func testClaims() ports.SessionTokenClaims {
	now := time.Now().Truncate(time.Second)
	return ports.SessionTokenClaims{
		UserID:    "u1",
		SessionID: "s1",
		TenantID:  "t1",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestNewJWTSigner_KeyLength(t *testing.T) {
	_, err := NewJWTSigner([]byte("short"))
	require.Error(t, err)

	signer, err := NewJWTSigner(testSigningKey)
	require.NoError(t, err)
	require.NotNil(t, signer)
}

func TestJWTSigner_SignAndVerify(t *testing.T) {
	signer, err := NewJWTSigner(testSigningKey)
	require.NoError(t, err)

	claims := testClaims()
	tok, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.Equal(t, 3, len(strings.Split(tok, ".")), "compact JWS has three segments")

	got, err := signer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, got.UserID)
	assert.Equal(t, claims.SessionID, got.SessionID)
	assert.Equal(t, claims.TenantID, got.TenantID)
	assert.WithinDuration(t, claims.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestJWTSigner_Sign_TokensAreUnique(t *testing.T) {
	signer, err := NewJWTSigner(testSigningKey)
	require.NoError(t, err)

	claims := testClaims()
	first, err := signer.Sign(claims)
	require.NoError(t, err)
	second, err := signer.Sign(claims)
	require.NoError(t, err)

	// The jti claim makes every minted token distinct.
	assert.NotEqual(t, first, second)
}

func TestJWTSigner_Sign_RequiredBindings(t *testing.T) {
	signer, err := NewJWTSigner(testSigningKey)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*ports.SessionTokenClaims)
	}{
		{"missing user", func(c *ports.SessionTokenClaims) { c.UserID = "" }},
		{"missing session", func(c *ports.SessionTokenClaims) { c.SessionID = "" }},
		{"missing tenant", func(c *ports.SessionTokenClaims) { c.TenantID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := testClaims()
			tt.mutate(&claims)
			_, signErr := signer.Sign(claims)
			assert.Error(t, signErr)
		})
	}
}

func TestJWTSigner_Verify_RejectsTamperedToken(t *testing.T) {
	signer, err := NewJWTSigner(testSigningKey)
	require.NoError(t, err)

	tok, err := signer.Sign(testClaims())
	require.NoError(t, err)

	_, err = signer.Verify(tok + "x")
	assert.Error(t, err)
}

func TestJWTSigner_Verify_RejectsWrongKey(t *testing.T) {
	signer, err := NewJWTSigner(testSigningKey)
	require.NoError(t, err)
	other, err := NewJWTSigner([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	tok, err := signer.Sign(testClaims())
	require.NoError(t, err)

	_, err = other.Verify(tok)
	assert.Error(t, err)
}

func TestJWTSigner_Verify_RejectsExpiredToken(t *testing.T) {
	signer, err := NewJWTSigner(testSigningKey)
	require.NoError(t, err)

	claims := testClaims()
	claims.IssuedAt = time.Now().Add(-2 * time.Hour)
	claims.ExpiresAt = time.Now().Add(-time.Hour)

	tok, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = signer.Verify(tok)
	assert.Error(t, err)
}

func TestJWTSigner_Verify_RejectsGarbage(t *testing.T) {
	signer, err := NewJWTSigner(testSigningKey)
	require.NoError(t, err)

	_, err = signer.Verify("not-a-token")
	assert.Error(t, err)
}
