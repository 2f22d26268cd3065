package service

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Custom error types for classifying provider misses
type ErrorType int

const (
	ErrorTypeNotConfigured ErrorType = iota
	ErrorTypeContextCancelled
	ErrorTypeNetworkError
	ErrorTypeInvalidResponse
	ErrorTypeAPIError
	ErrorTypeNoData
	ErrorTypeUnknown
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeNotConfigured:
		return "not_configured"
	case ErrorTypeContextCancelled:
		return "context_cancelled"
	case ErrorTypeNetworkError:
		return "network_error"
	case ErrorTypeInvalidResponse:
		return "invalid_response"
	case ErrorTypeAPIError:
		return "api_error"
	case ErrorTypeNoData:
		return "no_data"
	default:
		return "unknown"
	}
}

// ServiceError represents a provider failure with type information
type ServiceError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// ErrNoProviderResult is returned when every provider in the chain missed
var ErrNoProviderResult = errors.New("no flight status provider produced a result")

// classifyError classifies an error and returns the appropriate error type
func classifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	var serviceError *ServiceError
	if errors.As(err, &serviceError) && serviceError.Type != ErrorTypeUnknown {
		// Deadline and cancellation wrapped by a network error still count as cancellation
		if serviceError.Type == ErrorTypeNetworkError && isContextError(err) {
			return ErrorTypeContextCancelled
		}
		return serviceError.Type
	}

	if isContextError(err) {
		return ErrorTypeContextCancelled
	}

	var netError net.Error
	if errors.As(err, &netError) {
		return ErrorTypeNetworkError
	}

	return ErrorTypeUnknown
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ValidationError reports malformed caller input. It is the only error
// CheckEligibility surfaces to callers.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// IsContextCancelled reports whether err stems from the caller giving up
func IsContextCancelled(err error) bool {
	return classifyError(err) == ErrorTypeContextCancelled
}
