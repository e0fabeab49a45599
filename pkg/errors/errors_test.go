package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeUnwrapsWrappedErrors(t *testing.T) {
	base := SlotUnavailable(nil)
	wrapped := fmt.Errorf("booking failed: %w", base)

	code, ok := Code(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeSlotUnavailable, code)
	assert.True(t, Is(wrapped, ErrCodeSlotUnavailable))
	assert.False(t, Is(wrapped, ErrCodeNotFound))
}

func TestCodeOnPlainError(t *testing.T) {
	_, ok := Code(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "appointment not found", NotFound("appointment", nil).Error())
	assert.Equal(t, "cancellation requires at least 24 hours notice", LeadWindowViolation("cancellation", 24).Error())
	assert.Equal(t, "psychologist does not offer telehealth sessions", UnsupportedSessionType("telehealth").Error())
	assert.Equal(t, "cannot move appointment from completed to cancelled", InvalidTransition("completed", "cancelled").Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("row locked")
	err := SlotUnavailable(cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "row locked")
}
