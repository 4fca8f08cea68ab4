package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKindMatchesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("checkout failed: %w", NewOutOfStockError("Rice 5kg", 2))

	assert.True(t, IsKind(err, KindOutOfStock))
	assert.False(t, IsKind(err, KindInsufficientPayment))
	assert.False(t, IsKind(errors.New("plain"), KindOutOfStock))
}

func TestPaymentErrorsCarryAmounts(t *testing.T) {
	err := NewInsufficientPaymentError(1336.32, 1000)
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Contains(t, err.Message, "1336.32")
	assert.Contains(t, err.Message, "1000.00")

	err = NewPaymentMismatchError(500, 480)
	assert.Equal(t, KindPaymentMismatch, err.Kind)
	assert.Contains(t, err.Message, "480.00")
}

func TestGetAppErrorWrapsUnknownErrors(t *testing.T) {
	appErr := GetAppError(errors.New("disk full"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "disk full", appErr.Message)

	original := NewNotFoundError("Product")
	assert.Same(t, original, GetAppError(original))
}

func TestValidationErrorCollectsFieldErrors(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "price", Message: "must be greater than zero"},
	})

	assert.Equal(t, KindValidation, err.Kind)
	assert.Len(t, err.Errors, 1)
	assert.Equal(t, "price", err.Errors[0].Field)
}
