package openai

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingField is matched by a BuildError when a required field was never set.
	ErrMissingField = errors.New("required field is missing")
	// ErrConflictingFields is matched by a BuildError when mutually exclusive fields are both set.
	ErrConflictingFields = errors.New("fields are mutually exclusive")
	// ErrTransport is matched by TransportError and StatusError.
	ErrTransport = errors.New("transport error")
	// ErrDecode is matched by DecodeError.
	ErrDecode = errors.New("decode error")
)

// BuildError is returned by builders before any network activity happens.
type BuildError struct {
	Fields []string
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build request: %s: %s", strings.Join(e.Fields, ", "), e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Field returns the first field the error is about.
func (e *BuildError) Field() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0]
}

// TransportError is returned when the request never got an HTTP reply:
// DNS, connection, TLS, timeout or cancellation. Err is the cause as reported by the transport.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// StatusError is returned when the service replied with a non-2xx status.
// The body is kept as is and never decoded into the typed response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte

	// API is filled when the body carries the service error object.
	API *APIError
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(string(e.Body))
	if e.API != nil && e.API.Message != "" {
		msg = e.API.Message
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, msg)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrTransport
}

// APIError is the error object the service puts into non-2xx replies.
type APIError struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param,omitempty"`
	Code    *string `json:"code,omitempty"`
}

// DecodeError is returned when a 2xx reply cannot be decoded into the typed response.
type DecodeError struct {
	URL  string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %s", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// IsTransport reports whether err means the service could not be reached or refused the call.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsDecode reports whether err means the service reply had an unexpected shape.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}
