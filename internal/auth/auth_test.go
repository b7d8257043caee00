package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, expires, err := m.Generate("dev-1", "Pixel")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "dev-1", claims.DeviceID)
	assert.Equal(t, "Pixel", claims.DeviceName)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		_, err := other.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { m.now = time.Now }()
		_, err := m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassphraseAuthenticator(t *testing.T) {
	ctx := context.Background()

	hash, err := HashPassphrase("goa-2025")
	require.NoError(t, err)

	a, err := NewPassphraseAuthenticator(hash)
	require.NoError(t, err)
	assert.False(t, a.Open())
	assert.NoError(t, a.Authenticate(ctx, "goa-2025"))
	assert.ErrorIs(t, a.Authenticate(ctx, "wrong"), ErrInvalidCredentials)

	open, err := NewPassphraseAuthenticator("")
	require.NoError(t, err)
	assert.True(t, open.Open())
	assert.NoError(t, open.Authenticate(ctx, "anything"))

	_, err = NewPassphraseAuthenticator("plaintext")
	assert.Error(t, err)
}
