package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("Ada", "ada@example.com", nil)
		require.NoError(t, err)

		assert.Empty(t, user.ID)
		assert.Equal(t, "Ada", user.Name)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NotNil(t, user.PendingTasks)
		assert.Empty(t, user.PendingTasks)
	})

	t.Run("pending tasks are kept when provided", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("Ada", "ada@example.com", []string{"t1", "t2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"t1", "t2"}, user.PendingTasks)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewUser("", "ada@example.com", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyUserName)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty email is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewUser("Ada", "", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyEmail)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserHasPendingTask(t *testing.T) {
	t.Parallel()

	user := User{PendingTasks: []string{"t1", "t2"}}

	assert.True(t, user.HasPendingTask("t1"))
	assert.True(t, user.HasPendingTask("t2"))
	assert.False(t, user.HasPendingTask("t3"))
	assert.False(t, (&User{}).HasPendingTask("t1"))
}
