package ir

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes bridge errors.
type ErrorCode string

const (
	// ErrCodeUnsupportedPayload indicates an argument shape the encoder
	// cannot serialize. The call is rejected, never silently dropped.
	ErrCodeUnsupportedPayload ErrorCode = "UNSUPPORTED_PAYLOAD"

	// ErrCodeTransport indicates a synchronous host call failed or replied
	// with data that could not be decoded.
	ErrCodeTransport ErrorCode = "TRANSPORT"

	// ErrCodeConfiguration indicates a logic error in the bridge itself:
	// id exhaustion, an empty callback queue, or an invalid wrap setup.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
)

// Error is the structured error type returned (or panicked with, for fatal
// configuration errors) by every bridge layer.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Call is the intercepted call name, if any.
	Call string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Call != "" {
		msg = fmt.Sprintf("%s: %s", e.Call, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithCall returns a copy of e attributed to the named call. Errors raised
// deep in value conversion do not know the call they belong to.
func (e *Error) WithCall(call string) *Error {
	c := *e
	c.Call = call
	return &c
}

// NewUnsupportedPayloadError creates an Error for an unencodable argument.
func NewUnsupportedPayloadError(call, message string) *Error {
	return &Error{Code: ErrCodeUnsupportedPayload, Call: call, Message: message}
}

// NewTransportError wraps a host failure for the named call.
func NewTransportError(call string, err error) *Error {
	return &Error{Code: ErrCodeTransport, Call: call, Message: "host call failed", Err: err}
}

// NewConfigurationError creates an Error for a bridge logic or setup fault.
func NewConfigurationError(message string) *Error {
	return &Error{Code: ErrCodeConfiguration, Message: message}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsUnsupportedPayload reports whether err is an unsupported-payload error.
func IsUnsupportedPayload(err error) bool { return hasCode(err, ErrCodeUnsupportedPayload) }

// IsTransportError reports whether err is a transport error.
func IsTransportError(err error) bool { return hasCode(err, ErrCodeTransport) }

// IsConfigurationError reports whether err is a configuration error.
func IsConfigurationError(err error) bool { return hasCode(err, ErrCodeConfiguration) }
