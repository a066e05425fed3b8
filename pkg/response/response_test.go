package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "alumnihub/pkg/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSuccessEnvelope(t *testing.T) {
	c, rec := newContext()

	err := Success(c, map[string]string{"id": "conv-1"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "conv-1")
}

func TestCreatedEnvelope(t *testing.T) {
	c, rec := newContext()

	err := Created(c, map[string]string{"id": "req-1"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestErrorMapsAppError(t *testing.T) {
	c, rec := newContext()

	err := Error(c, apperrors.Forbidden("Admin cannot send messages", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
	assert.Contains(t, rec.Body.String(), "Admin cannot send messages")
}

func TestErrorMapsValidationError(t *testing.T) {
	c, rec := newContext()

	type payload struct {
		TargetID string `validate:"required"`
	}
	validationErr := validator.New().Struct(payload{})
	require.Error(t, validationErr)

	err := Error(c, validationErr)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, rec.Body.String(), "targetid is required")
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	c, rec := newContext()

	err := Error(c, assert.AnError)

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
