package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser(uuid.New(), "Admin@Example.com", "Admin", "secret-password", RoleAdmin)
		require.NoError(t, err)

		assert.Equal(t, "admin@example.com", user.Email)
		assert.True(t, user.Active)
		assert.NotEqual(t, "secret-password", user.PasswordHash)
		assert.True(t, user.CheckPassword("secret-password"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "a@b.com", "A", "short", RoleAdmin)
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "not-an-email", "A", "secret-password", RoleAdmin)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "a@b.com", "A", "secret-password", Role("root"))
		assert.Error(t, err)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.com", "A", "secret-password", RoleStaff)
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("another-password"))
	assert.True(t, user.CheckPassword("another-password"))
	assert.False(t, user.CheckPassword("secret-password"))

	assert.Error(t, user.ChangePassword("short"))
}
