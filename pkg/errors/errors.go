package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConflict indicates a conflict with existing data
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeUnauthorized indicates unauthorized access
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// ErrorTypeNotAProvider indicates the target or requesting user is not a provider
	ErrorTypeNotAProvider ErrorType = "NOT_A_PROVIDER"

	// ErrorTypeSelfBooking indicates a client tried to book themselves
	ErrorTypeSelfBooking ErrorType = "SELF_BOOKING"

	// ErrorTypePastDate indicates the requested slot lies in the past
	ErrorTypePastDate ErrorType = "PAST_DATE"

	// ErrorTypeSlotTaken indicates the requested slot is already booked
	ErrorTypeSlotTaken ErrorType = "SLOT_TAKEN"

	// ErrorTypeNotOwner indicates the requester does not own the appointment
	ErrorTypeNotOwner ErrorType = "NOT_OWNER"

	// ErrorTypeTooLateToCancel indicates the cancellation window has closed
	ErrorTypeTooLateToCancel ErrorType = "TOO_LATE_TO_CANCEL"

	// ErrorTypeAlreadyCanceled indicates the appointment was canceled before
	ErrorTypeAlreadyCanceled ErrorType = "ALREADY_CANCELED"

	// ErrorTypeMailDelivery indicates a non-fatal mail delivery failure
	ErrorTypeMailDelivery ErrorType = "MAIL_DELIVERY"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from an external service
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// TypeOf returns the ErrorType of err, or ErrorTypeInternal when err is
// not an AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
	}
}

// NewNotAProviderError creates a new not-a-provider error
func NewNotAProviderError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotAProvider,
		Message: message,
	}
}

// NewSelfBookingError creates a new self-booking error
func NewSelfBookingError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeSelfBooking,
		Message: message,
	}
}

// NewPastDateError creates a new past-date error
func NewPastDateError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypePastDate,
		Message: message,
	}
}

// NewSlotTakenError creates a new slot-taken error
func NewSlotTakenError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeSlotTaken,
		Message: message,
	}
}

// NewNotOwnerError creates a new not-owner error
func NewNotOwnerError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotOwner,
		Message: message,
	}
}

// NewTooLateToCancelError creates a new too-late-to-cancel error
func NewTooLateToCancelError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeTooLateToCancel,
		Message: message,
	}
}

// NewAlreadyCanceledError creates a new already-canceled error
func NewAlreadyCanceledError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeAlreadyCanceled,
		Message: message,
	}
}

// NewMailDeliveryError creates a new mail delivery error
func NewMailDeliveryError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeMailDelivery,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}
