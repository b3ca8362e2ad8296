package postgresql_test

import (
	"context"
	"testing"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	requireTestDB(t)
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewUserRepository(testDB)

	created, err := repo.Create(ctx, user.User{
		Email:        "newuser@example.com",
		PasswordHash: "hashed",
		FullName:     "New User",
		Role:         user.RoleEmployee,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, user.RoleEmployee, created.Role)

	found, err := repo.GetByEmail(ctx, "newuser@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	requireTestDB(t)
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewUserRepository(testDB)

	newUser := user.User{
		Email:        "dup@example.com",
		PasswordHash: "hashed",
		FullName:     "Dup User",
		Role:         user.RoleEmployee,
	}

	_, err := repo.Create(ctx, newUser)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newUser)
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	requireTestDB(t)
	defer cleanupTestData(t)
	cleanupTestData(t)

	repo := postgresql.NewUserRepository(testDB)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	requireTestDB(t)
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	createTestUser(t, ctx, "exists@example.com")
	repo := postgresql.NewUserRepository(testDB)

	exists, err := repo.ExistsByEmail(ctx, "exists@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
