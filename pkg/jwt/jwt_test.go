package jwt

import (
	"testing"
	"time"

	"health-wheel/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s3cret", SessionExpiry: time.Hour})

	token, sessionID, err := svc.GenerateSessionToken(42, "ada@example.com", "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.PatientID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestValidateToken_Rejects(t *testing.T) {
	signer := NewJWTService(config.JWTConfig{Secret: "one", SessionExpiry: time.Hour})
	token, _, err := signer.GenerateSessionToken(1, "a@b.c", "user")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "two", SessionExpiry: time.Hour})
		_, err := other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{Secret: "one", SessionExpiry: -time.Minute})
		stale, _, err := expired.GenerateSessionToken(1, "a@b.c", "user")
		require.NoError(t, err)
		_, err = signer.ValidateToken(stale)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := signer.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestMissingSecret(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{SessionExpiry: time.Hour})

	_, _, err := svc.GenerateSessionToken(1, "a@b.c", "user")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)

	_, err = svc.ValidateToken("anything")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}
