package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of application error.
type ErrorCode int

const (
	ErrCodeNotFound ErrorCode = iota + 1000
	ErrCodeValidation
	ErrCodeUnauthorized
	ErrCodeForbidden
	ErrCodeInternal

	// Booking error codes
	ErrCodeSlotUnavailable
	ErrCodeSlotInPast
	ErrCodeUnsupportedSessionType
	ErrCodeLeadWindowViolation
	ErrCodeInvalidTransition
	ErrCodePatientConflict
)

// AppError carries a stable error code alongside a user-facing message.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code extracts the application error code from err, if any.
func Code(err error) (ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return 0, false
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	c, ok := Code(err)
	return ok && c == code
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Forbidden(action string) *AppError {
	return &AppError{
		Code:    ErrCodeForbidden,
		Message: fmt.Sprintf("not permitted to %s", action),
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// SlotUnavailable is returned when a slot is already claimed by another
// booking, no longer offered, or was removed between listing and commit.
func SlotUnavailable(err error) *AppError {
	return &AppError{
		Code:    ErrCodeSlotUnavailable,
		Message: "time slot is no longer available",
		Err:     err,
	}
}

// SlotInPast is returned when a booking targets a slot whose start time
// has already passed.
func SlotInPast() *AppError {
	return &AppError{
		Code:    ErrCodeSlotInPast,
		Message: "time slot start is in the past",
	}
}

// UnsupportedSessionType is returned when the psychologist does not offer
// the requested delivery mode.
func UnsupportedSessionType(sessionType string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedSessionType,
		Message: fmt.Sprintf("psychologist does not offer %s sessions", sessionType),
	}
}

// LeadWindowViolation is returned when a cancellation or reschedule is
// attempted too close to the appointment start.
func LeadWindowViolation(action string, hours float64) *AppError {
	return &AppError{
		Code:    ErrCodeLeadWindowViolation,
		Message: fmt.Sprintf("%s requires at least %.0f hours notice", action, hours),
	}
}

// InvalidTransition is returned when a status change is not permitted
// from the appointment's current state.
func InvalidTransition(from, to string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot move appointment from %s to %s", from, to),
	}
}

// PatientConflict is returned when the patient already has an active
// appointment overlapping the requested slot.
func PatientConflict() *AppError {
	return &AppError{
		Code:    ErrCodePatientConflict,
		Message: "patient already has an appointment at this time",
	}
}
