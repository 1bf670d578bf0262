package selectbox

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeConfiguration indicates the widget was configured in a way it cannot run with
	ErrTypeConfiguration ErrorType = iota
	// ErrTypeMalformedOption indicates an option entry without id or text
	ErrTypeMalformedOption
	// ErrTypeIndex indicates an option lookup by index or id that does not resolve
	ErrTypeIndex
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeConfiguration:
		return "Configuration Error"
	case ErrTypeMalformedOption:
		return "Malformed Option"
	case ErrTypeIndex:
		return "Index Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is returned synchronously by the core when it is misused.
// Remote failures never surface as an Error; they become State.Error.
type Error struct {
	Type    ErrorType
	Message string
	Field   string // configuration key, when applicable
	Index   int    // entry or highlight index, -1 when not applicable
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a configuration error for the given key
func NewConfigurationError(field, message string) *Error {
	return &Error{Type: ErrTypeConfiguration, Field: field, Message: message, Index: -1}
}

// NewMalformedOptionError creates an error for the option entry at index
func NewMalformedOptionError(index int, message string) *Error {
	return &Error{Type: ErrTypeMalformedOption, Message: message, Index: index}
}

// NewIndexError creates an error for an unresolvable option reference
func NewIndexError(index int, message string) *Error {
	return &Error{Type: ErrTypeIndex, Message: message, Index: index}
}

func isType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	return isType(err, ErrTypeConfiguration)
}

// IsMalformedOptionError checks if an error is a malformed option error
func IsMalformedOptionError(err error) bool {
	return isType(err, ErrTypeMalformedOption)
}

// IsIndexError checks if an error is an index error
func IsIndexError(err error) bool {
	return isType(err, ErrTypeIndex)
}

// UsageWarning describes a misuse that is reported but never blocks the widget.
type UsageWarning struct {
	Code    string
	Message string
}

const (
	WarnUncontrolledValue = "uncontrolled-value"
	WarnMissingTermQuery  = "missing-term-query"
	WarnOptionsAndMarkup  = "options-and-children"
)

func (w UsageWarning) String() string {
	return w.Code + ": " + w.Message
}
