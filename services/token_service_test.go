package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"blog-platform/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func unauthorizedReason(t *testing.T, err error) models.UnauthorizedReason {
	t.Helper()
	var unauthorized *models.ErrorUnauthorized
	require.True(t, errors.As(err, &unauthorized), "expected ErrorUnauthorized, got %v", err)
	return unauthorized.Reason
}

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	token, err := tokens.Issue(42)
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestTokenService_Expired(t *testing.T) {
	token, err := NewTokenService("test-secret", -time.Minute).Issue(1)
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", time.Hour).Verify(token)
	assert.Equal(t, models.ReasonExpiredToken, unauthorizedReason(t, err))
}

func TestTokenService_Invalid(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	foreign, err := NewTokenService("other-secret", time.Hour).Issue(1)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "abc",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": foreign,
		"alg none":     noneToken,
		"bad subject":  badSubject,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(token)
			assert.Equal(t, models.ReasonInvalidToken, unauthorizedReason(t, err))
		})
	}
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", digest)
	assert.True(t, hasher.Verify("secret123", digest))
	assert.False(t, hasher.Verify("wrong", digest))
	assert.False(t, hasher.Verify("secret123", "not-a-hash"))
}

func TestIdentityResolver(t *testing.T) {
	users := newMockUserRepo()
	tokens := NewTokenService("test-secret", time.Hour)
	resolver := NewIdentityResolver(tokens, users)
	ctx := context.Background()

	user := &models.User{Name: "Ann", Email: "ann@example.com", Password: "x", Status: models.UserActive}
	require.NoError(t, users.Create(ctx, user))
	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		identity, err := resolver.Resolve(ctx, "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, &models.Identity{ID: user.ID, Name: "Ann", Email: "ann@example.com"}, identity)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "")
		assert.Equal(t, models.ReasonNoToken, unauthorizedReason(t, err))

		_, err = resolver.Resolve(ctx, "Bearer ")
		assert.Equal(t, models.ReasonNoToken, unauthorizedReason(t, err))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "Basic "+token)
		assert.Equal(t, models.ReasonInvalidToken, unauthorizedReason(t, err))
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := NewTokenService("test-secret", -time.Minute).Issue(user.ID)
		require.NoError(t, err)
		_, err = resolver.Resolve(ctx, "Bearer "+expired)
		assert.Equal(t, models.ReasonExpiredToken, unauthorizedReason(t, err))
	})

	t.Run("user gone", func(t *testing.T) {
		orphan, err := tokens.Issue(999)
		require.NoError(t, err)
		_, err = resolver.Resolve(ctx, "Bearer "+orphan)
		assert.Equal(t, models.ReasonUserNotFound, unauthorizedReason(t, err))
	})

	t.Run("store failure is not unauthorized", func(t *testing.T) {
		users.err = errStoreDown
		defer func() { users.err = nil }()

		_, err := resolver.Resolve(ctx, "Bearer "+token)
		var internal *models.ErrorInternalServer
		assert.True(t, errors.As(err, &internal))
	})
}
