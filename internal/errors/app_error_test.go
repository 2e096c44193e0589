package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {

	t.Run("Wrapped app error is found", func(t *testing.T) {
		cause := stderrors.New("redis: connection refused")
		appErr := errors.CacheError("Failed to save cart").WithError(cause)

		wrapped := fmt.Errorf("saving: %w", appErr)

		got, ok := errors.IsAppError(wrapped)
		require.True(t, ok)
		assert.Equal(t, http.StatusServiceUnavailable, got.StatusCode)
		assert.ErrorIs(t, wrapped, cause)
		assert.Equal(t, "Failed to save cart", got.Error())
	})

	t.Run("Plain error is not an app error", func(t *testing.T) {
		_, ok := errors.IsAppError(stderrors.New("boom"))
		assert.False(t, ok)
	})

	t.Run("Retry after and detail", func(t *testing.T) {
		appErr := errors.TooManyRequestsError("Too many parts requests").
			WithDetail("Try again in 2 minutes").
			WithRetryAfter(120)

		assert.Equal(t, errors.ErrCodeTooManyRequests, appErr.Code)
		assert.Equal(t, 120, appErr.RetryAfter)
		assert.Equal(t, "Try again in 2 minutes", appErr.Detail)
	})

	t.Run("Field validation message", func(t *testing.T) {
		appErr := errors.AddValidationError("yearFrom", "must be a non-negative integer")

		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, "Invalid field 'yearFrom': must be a non-negative integer", appErr.Message)
	})

	t.Run("Checkout errors", func(t *testing.T) {
		assert.Equal(t, http.StatusUnprocessableEntity, errors.EmptyCartError("Cart is empty").StatusCode)
		assert.Equal(t, http.StatusConflict, errors.InvalidStepError("Wrong step").StatusCode)
	})
}
