package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDuplicate  ErrorType = "duplicate"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeExternal   ErrorType = "external"
	ErrorTypeInternal   ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Domain error variables

var (
	// Validation Errors
	ErrEmptyQuestion      = NewDomainError(ErrorTypeValidation, "question cannot be empty", nil)
	ErrEmptyAnswer        = NewDomainError(ErrorTypeValidation, "answer cannot be empty", nil)
	ErrEmptyQuery         = NewDomainError(ErrorTypeValidation, "query cannot be empty", nil)
	ErrInvalidSnapshot    = NewDomainError(ErrorTypeValidation, "snapshot has no data section", nil)
	ErrInvalidProvider    = NewDomainError(ErrorTypeValidation, "invalid provider specified", nil)
	ErrMissingAPIKey      = NewDomainError(ErrorTypeValidation, "API key is not configured", nil)
	ErrInvalidWorkMode    = NewDomainError(ErrorTypeValidation, "invalid work mode", nil)

	// Duplicate Errors
	ErrDuplicateCase     = NewDomainError(ErrorTypeDuplicate, "a similar case already exists", nil)
	ErrDuplicateFavorite = NewDomainError(ErrorTypeDuplicate, "function already in favorites", nil)

	// Not Found Errors
	ErrFavoriteNotFound = NewDomainError(ErrorTypeNotFound, "favorite not found", nil)
	ErrFormulaNotFound  = NewDomainError(ErrorTypeNotFound, "formula not found", nil)

	// Storage Errors
	ErrStorageRead  = NewDomainError(ErrorTypeStorage, "storage read failed", nil)
	ErrStorageWrite = NewDomainError(ErrorTypeStorage, "storage write failed", nil)

	// External Provider Errors
	ErrProviderUnavailable = NewDomainError(ErrorTypeExternal, "AI provider unavailable", nil)
	ErrProviderError       = NewDomainError(ErrorTypeExternal, "AI provider error", nil)
)

// Error type checking helper functions

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeValidation
	}
	return false
}

// IsDuplicateError checks if an error is a duplicate error
func IsDuplicateError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeDuplicate
	}
	return false
}

// IsStorageError checks if an error is a storage error
func IsStorageError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeStorage
	}
	return false
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeNotFound
	}
	return false
}

// IsExternalError checks if an error is an external provider error
func IsExternalError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeExternal
	}
	return false
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// WrapError wraps an error with additional context
func WrapError(errType ErrorType, message string, err error) error {
	return NewDomainError(errType, message, err)
}

// WrapStorage wraps an error as a storage error
func WrapStorage(message string, err error) error {
	return NewDomainError(ErrorTypeStorage, message, err)
}

// WrapExternal wraps an error as an external provider error
func WrapExternal(message string, err error) error {
	return NewDomainError(ErrorTypeExternal, message, err)
}
