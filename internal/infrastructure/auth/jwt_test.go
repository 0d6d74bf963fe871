package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indolink/backend/internal/domain/identity"
	"github.com/indolink/backend/internal/infrastructure/config"
)

func testService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests-only",
		Expiration: expiration,
		Issuer:     "indolink-test",
	})
}

func testUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("dewi", "dewi@example.com", "$2a$10$hash", role)
	require.NoError(t, err)
	return user
}

func TestGenerateAndValidate(t *testing.T) {
	svc := testService(time.Hour)
	user := testUser(t, identity.RoleSeller)

	token, expiresAt, err := svc.Generate(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "dewi", claims.Username)
	assert.Equal(t, "SELLER", claims.Role)

	actor := claims.Actor()
	assert.Equal(t, user.ID, actor.ID)
	assert.Equal(t, identity.RoleSeller, actor.Role)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := testService(time.Hour)

	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := testService(-time.Minute)
	token, _, err := svc.Generate(testUser(t, identity.RoleBuyer))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := testService(time.Hour).Generate(testUser(t, identity.RoleAdmin))
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:     "a-completely-different-secret-key",
		Expiration: time.Hour,
		Issuer:     "indolink-test",
	})
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaimsActorZeroOnBadClaims(t *testing.T) {
	claims := &Claims{UserID: "not-a-uuid", Role: "SELLER"}
	assert.True(t, claims.Actor().IsZero())

	claims = &Claims{UserID: "11111111-1111-1111-1111-111111111111", Role: "seller"}
	assert.True(t, claims.Actor().IsZero())
}
