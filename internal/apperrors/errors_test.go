package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Handlers map AppError-wrapped failures with errors.Is, so the wrapper must
// unwrap to its sentinel.
func TestNewValidationErrorUnwrapsToSentinel(t *testing.T) {
	err := NewValidationError("role must be EMPLOYEE or MANAGER")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "role must be EMPLOYEE or MANAGER")
}

func TestAppErrorUnwrapsNestedSentinel(t *testing.T) {
	inner := fmt.Errorf("store failed: %w", ErrNotFound)
	err := NewAppError(500, "lookup failed", inner)

	assert.True(t, errors.Is(err, ErrNotFound))
}
