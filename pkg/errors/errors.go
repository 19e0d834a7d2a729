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

	// ErrorTypeConflict indicates a duplicate natural key
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeUnauthorized indicates unauthorized access
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from external service
	ErrorTypeExternal ErrorType = "EXTERNAL"

	// ErrorTypeStoreUnavailable indicates that no data store could be opened
	ErrorTypeStoreUnavailable ErrorType = "STORE_UNAVAILABLE"

	// ErrorTypeTableAbsent indicates that a legacy table does not exist
	ErrorTypeTableAbsent ErrorType = "TABLE_ABSENT"

	// ErrorTypeRowTransform indicates a legacy row that could not be converted
	ErrorTypeRowTransform ErrorType = "ROW_TRANSFORM"

	// ErrorTypeCorrupt indicates an unreadable snapshot file
	ErrorTypeCorrupt ErrorType = "CORRUPT"
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
func NewConflictError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
		Err:     err,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
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

// NewStoreUnavailableError reports that neither the primary nor the fallback store opened.
func NewStoreUnavailableError(primary, fallback error) *AppError {
	return &AppError{
		Type:    ErrorTypeStoreUnavailable,
		Message: "no data store available",
		Err:     errors.Join(primary, fallback),
	}
}

// NewTableAbsentError creates a new table absent error
func NewTableAbsentError(table string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTableAbsent,
		Message: fmt.Sprintf("table %s not found", table),
		Err:     err,
	}
}

// NewRowTransformError creates a new row transform error
func NewRowTransformError(table, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeRowTransform,
		Message: fmt.Sprintf("%s: %s", table, message),
	}
}

// NewCorruptError creates a new corrupt snapshot error
func NewCorruptError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeCorrupt,
		Message: message,
		Err:     err,
	}
}

// IsType reports whether any AppError in err's chain has the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Type == t {
			return true
		}
		err = appErr.Err
	}
	return false
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsConflict reports whether err is a conflict error
func IsConflict(err error) bool {
	return IsType(err, ErrorTypeConflict)
}
