package validation

import (
	"testing"

	domainerrors "github.com/lendlyapp/lendly-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

func TestValidate_Success(t *testing.T) {
	v := New()

	err := v.Validate(registerInput{
		Name:     "Jane Reader",
		Email:    "jane@example.com",
		Password: "hunter22",
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(registerInput{
		Name:     "Jane Reader",
		Email:    "not-an-email",
		Password: "abc",
	})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "must be at least 6 characters", details["password"])
}

func TestValidate_RequiredFields(t *testing.T) {
	v := New()

	err := v.Validate(registerInput{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
}
