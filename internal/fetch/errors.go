package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates a non-2xx response
	ErrTypeHTTP
	// ErrTypeParse indicates a response that is not a list of options
	ErrTypeParse
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the option source refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeCanceled indicates the caller gave up on the request
	ErrTypeCanceled
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// FetchError represents a failed option request
type FetchError struct {
	Type       ErrorType
	Message    string
	StatusCode int    // HTTP status code (if applicable)
	URL        string // request target (if known)
	Err        error
	Retryable  bool
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a typed error
func ClassifyNetworkError(err error) *FetchError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &FetchError{Type: ErrTypeCanceled, Message: "Request canceled", Err: err}
	}

	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Type: ErrTypeTimeout, Message: "Request timed out", Err: err, Retryable: true}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &FetchError{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &FetchError{Type: ErrTypeConnectionRefused, Message: "Connection refused", Err: err, Retryable: true}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ClassifyNetworkError(urlErr.Err)
	}

	return &FetchError{Type: ErrTypeNetwork, Message: "Network error occurred", Err: err, Retryable: true}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *FetchError {
	classified := ClassifyNetworkError(err)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &FetchError{Type: ErrTypeNetwork, Message: message, Retryable: true}
}

// NewHTTPError creates an HTTP-level error. Server errors and 429 are retryable.
func NewHTTPError(statusCode int, message string) *FetchError {
	return &FetchError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= 500 || statusCode == 429,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *FetchError {
	return &FetchError{Type: ErrTypeParse, Message: message, Err: err}
}

func asFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	ok := errors.As(err, &fe)
	return fe, ok
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS)
func IsNetworkError(err error) bool {
	if fe, ok := asFetchError(err); ok {
		return fe.Type == ErrTypeNetwork ||
			fe.Type == ErrTypeTimeout ||
			fe.Type == ErrTypeConnectionRefused ||
			fe.Type == ErrTypeDNS
	}
	return false
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	fe, ok := asFetchError(err)
	return ok && fe.Type == ErrTypeHTTP
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	fe, ok := asFetchError(err)
	return ok && fe.Type == ErrTypeParse
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	fe, ok := asFetchError(err)
	return ok && fe.Retryable
}

// ShortMessage returns a concise, user-facing description of err.
func ShortMessage(err error) string {
	fe, ok := asFetchError(err)
	if !ok {
		return err.Error()
	}
	switch fe.Type {
	case ErrTypeTimeout:
		return "Option source not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Option source refused connection"
	case ErrTypeDNS:
		return "Cannot resolve option source host"
	case ErrTypeHTTP:
		return fmt.Sprintf("Option source error (HTTP %d)", fe.StatusCode)
	case ErrTypeParse:
		return "Unexpected response from option source"
	case ErrTypeCanceled:
		return "Request canceled"
	default:
		return "Network error - check connection"
	}
}
