package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with valid inputs", func(t *testing.T) {
		user, err := NewUser("wira", "wira@example.com", "$2a$10$hash", RoleSeller)
		require.NoError(t, err)
		assert.Equal(t, "wira", user.Username)
		assert.Equal(t, "wira@example.com", user.Email)
		assert.Equal(t, RoleSeller, user.Role)
	})

	t.Run("lowercases email", func(t *testing.T) {
		user, err := NewUser("wira", "Wira@Example.COM", "$2a$10$hash", RoleBuyer)
		require.NoError(t, err)
		assert.Equal(t, "wira@example.com", user.Email)
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		_, err := NewUser("wira", "wira@example.com", "$2a$10$hash", Role("ROOT"))
		require.Error(t, err)
	})

	t.Run("rejects bad email", func(t *testing.T) {
		_, err := NewUser("wira", "not-an-email", "$2a$10$hash", RoleBuyer)
		require.Error(t, err)
	})

	t.Run("rejects empty username", func(t *testing.T) {
		_, err := NewUser("  ", "wira@example.com", "$2a$10$hash", RoleBuyer)
		require.Error(t, err)
	})
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"ADMIN", "SELLER", "BUYER"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.Equal(t, valid, role.String())
	}

	_, ok := ParseRole("admin")
	assert.False(t, ok)
}
