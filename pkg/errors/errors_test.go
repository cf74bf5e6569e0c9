package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewExternalError("booking service unavailable", errors.New("dial tcp: refused"))
	assert.Equal(t, "EXTERNAL: booking service unavailable: dial tcp: refused", err.Error())

	assert.Equal(t, "NOT_FOUND: journey j-1 not found", NewNotFoundError("journey j-1 not found").Error())
}

func TestTypeOf_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("advance: %w", NewStepOutOfRangeError(9))

	assert.Equal(t, ErrorTypeStepOutOfRange, TypeOf(wrapped))
	assert.True(t, Is(wrapped, ErrorTypeStepOutOfRange))
	assert.False(t, Is(wrapped, ErrorTypeValidation))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError("failed to save journey", cause)
	assert.ErrorIs(t, err, cause)
}
