package credential_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nourshop/storefront/pkg/credential"
)

var signingKey = []byte("test-signing-key-used-only-in-tests")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString(signingKey)
	require.NoError(t, err)
	return raw
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("reads subject email and role", func(t *testing.T) {
		t.Parallel()
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		raw := signToken(t, jwt.MapClaims{
			"sub":   "u1",
			"email": "u1@example.com",
			"role":  "admin",
			"exp":   exp.Unix(),
		})

		identity, err := credential.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, "u1", identity.SubjectID)
		assert.Equal(t, "u1@example.com", identity.Email)
		assert.Equal(t, credential.RoleAdmin, identity.Role)
		require.NotNil(t, identity.ExpiresAt)
		assert.True(t, identity.ExpiresAt.Equal(exp))
	})

	t.Run("missing exp means never expires", func(t *testing.T) {
		t.Parallel()
		raw := signToken(t, jwt.MapClaims{
			"sub":  "u1",
			"role": "user",
		})

		identity, err := credential.Decode(raw)
		require.NoError(t, err)
		assert.Nil(t, identity.ExpiresAt)
		assert.False(t, identity.ExpiredAt(time.Now().Add(100*365*24*time.Hour)))
	})

	t.Run("missing role defaults to user", func(t *testing.T) {
		t.Parallel()
		raw := signToken(t, jwt.MapClaims{"sub": "u1"})

		identity, err := credential.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, credential.RoleUser, identity.Role)
	})

	t.Run("garbage token is malformed", func(t *testing.T) {
		t.Parallel()
		_, err := credential.Decode("not.a.token")
		assert.ErrorIs(t, err, credential.ErrMalformedCredential)
	})

	t.Run("missing subject is malformed", func(t *testing.T) {
		t.Parallel()
		raw := signToken(t, jwt.MapClaims{"email": "x@example.com"})

		_, err := credential.Decode(raw)
		assert.ErrorIs(t, err, credential.ErrMalformedCredential)
	})

	t.Run("unknown role is malformed", func(t *testing.T) {
		t.Parallel()
		raw := signToken(t, jwt.MapClaims{"sub": "u1", "role": "superuser"})

		_, err := credential.Decode(raw)
		assert.ErrorIs(t, err, credential.ErrMalformedCredential)
	})

	t.Run("signature is not verified", func(t *testing.T) {
		t.Parallel()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
		raw, err := token.SignedString([]byte("a-completely-different-key"))
		require.NoError(t, err)

		identity, err := credential.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, "u1", identity.SubjectID)
	})
}

func TestIdentityExpiredAt(t *testing.T) {
	t.Parallel()

	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.True(t, credential.Identity{ExpiresAt: &past}.ExpiredAt(now))
	assert.False(t, credential.Identity{ExpiresAt: &future}.ExpiredAt(now))
	assert.False(t, credential.Identity{}.ExpiredAt(now))
}

func TestRole(t *testing.T) {
	t.Parallel()

	assert.True(t, credential.RoleAdmin.Valid())
	assert.True(t, credential.RoleSubadmin.Valid())
	assert.True(t, credential.RoleUser.Valid())
	assert.False(t, credential.Role("root").Valid())

	assert.True(t, credential.RoleAdmin.IsStaff())
	assert.True(t, credential.RoleSubadmin.IsStaff())
	assert.False(t, credential.RoleUser.IsStaff())
}
