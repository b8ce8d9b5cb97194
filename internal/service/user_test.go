package service

import (
	"context"
	"testing"

	domainerrors "github.com/lendlyapp/lendly-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserUpdate_PartialFields(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	user := registerTestUser(t, services, "jane@example.com", "user")

	newName := "Jane Q. Reader"
	newContact := "5559999"
	updated, err := services.Users.Update(ctx, user.ID, UpdateUserRequest{
		Name:    &newName,
		Contact: &newContact,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Reader", updated.Name)
	assert.Equal(t, "5559999", updated.Contact)
	// Untouched fields survive.
	assert.Equal(t, "jane@example.com", updated.Email)
	// The password hash never moves through this path.
	assert.Equal(t, user.PasswordHash, updated.PasswordHash)
}

func TestUserUpdate_EmailCollision(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	registerTestUser(t, services, "taken@example.com", "user")
	user := registerTestUser(t, services, "jane@example.com", "user")

	taken := "taken@example.com"
	_, err := services.Users.Update(ctx, user.ID, UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestUserUpdate_NotFound(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	name := "Ghost"
	_, err := services.Users.Update(context.Background(), "user-missing", UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestChangePassword_Success(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	user := registerTestUser(t, services, "jane@example.com", "user")

	err := services.Users.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		OldPassword: "hunter22",
		NewPassword: "correct horse",
	})
	require.NoError(t, err)

	// Old password stops working, new one logs in.
	_, err = services.Auth.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = services.Auth.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "correct horse"})
	assert.NoError(t, err)
}

func TestChangePassword_OldMismatch(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	user := registerTestUser(t, services, "jane@example.com", "user")

	err := services.Users.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		OldPassword: "not-the-password",
		NewPassword: "irrelevant1",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestChangePassword_NewTooShort(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	user := registerTestUser(t, services, "jane@example.com", "user")

	err := services.Users.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		OldPassword: "hunter22",
		NewPassword: "abc",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestUserDelete(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	user := registerTestUser(t, services, "jane@example.com", "user")

	require.NoError(t, services.Users.Delete(ctx, user.ID))

	_, err := services.Users.Get(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// Deleting again reports the account as gone.
	err = services.Users.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserList(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	registerTestUser(t, services, "a@example.com", "user")
	registerTestUser(t, services, "b@example.com", "admin")

	users, err := services.Users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
