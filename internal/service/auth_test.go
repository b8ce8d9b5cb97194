package service

import (
	"context"
	"testing"

	"github.com/lendlyapp/lendly-server/internal/domain"
	domainerrors "github.com/lendlyapp/lendly-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	user, err := services.Auth.Register(context.Background(), RegisterRequest{
		Name:     "Jane Reader",
		Contact:  "5551234",
		Email:    "jane@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.Contains(t, user.PasswordHash, "$argon2id$")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	registerTestUser(t, services, "jane@example.com", "user")

	_, err := services.Auth.Register(context.Background(), RegisterRequest{
		Name:     "Impostor",
		Contact:  "5550000",
		Email:    "Jane@Example.com", // different casing, same address
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestRegister_ValidationRules(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Contact: "1", Email: "a@b.com", Password: "secret1"}},
		{"bad email", RegisterRequest{Name: "A", Contact: "1", Email: "nope", Password: "secret1"}},
		{"short password", RegisterRequest{Name: "A", Contact: "1", Email: "a@b.com", Password: "short"}},
		{"bad role", RegisterRequest{Name: "A", Contact: "1", Email: "a@b.com", Password: "secret1", Role: "root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.Auth.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	registered := registerTestUser(t, services, "jane@example.com", "user")

	resp, err := services.Auth.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	// The issued token resolves back to the same user.
	user, claims, err := services.Auth.VerifyAccessToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, string(domain.RoleUser), claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	registerTestUser(t, services, "jane@example.com", "user")

	_, err := services.Auth.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	// Unknown email reports the same error as a bad password.
	_, err := services.Auth.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	services, _, cleanup := setupServiceTest(t)
	defer cleanup()

	_, _, err := services.Auth.VerifyAccessToken(context.Background(), "v4.local.garbage")
	assert.Error(t, err)
}
