// Package apierror defines the gateway's error taxonomy. Every failure is
// converted into an Error at the point it is detected and carries the HTTP
// status the handler should answer with, so the HTTP layer never inspects
// causes itself.
package apierror

import "net/http"

type Category string

const (
	InvalidRequest    Category = "invalid_request"
	Timeout           Category = "timeout"
	ConnectionFailure Category = "connection_failure"
	RateLimited       Category = "rate_limited"
	AuthFailure       Category = "auth_failure"
	Upstream          Category = "upstream_error"
	Internal          Category = "internal"
)

// statusFor is the category→status lookup. Upstream is the only category
// whose status can be overridden by an upstream-provided code.
var statusFor = map[Category]int{
	InvalidRequest:    http.StatusBadRequest,
	Timeout:           http.StatusRequestTimeout,
	ConnectionFailure: http.StatusServiceUnavailable,
	RateLimited:       http.StatusTooManyRequests,
	AuthFailure:       http.StatusUnauthorized,
	Upstream:          http.StatusInternalServerError,
	Internal:          http.StatusInternalServerError,
}

type Error struct {
	Category Category
	Message  string
	Status   int
	Details  interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func newError(cat Category, msg string, details interface{}) *Error {
	return &Error{
		Category: cat,
		Message:  msg,
		Status:   statusFor[cat],
		Details:  details,
	}
}

// NewInvalidBody covers bodies that do not parse as JSON at all. It carries
// no field detail, which distinguishes it from schema violations.
func NewInvalidBody() *Error {
	return newError(InvalidRequest, "Invalid JSON body", nil)
}

// NewInvalidRequest covers schema/constraint violations; details is the
// field-level validation error.
func NewInvalidRequest(details interface{}) *Error {
	return newError(InvalidRequest, "Invalid request", details)
}

func NewTimeout(details string) *Error {
	return newError(Timeout, "Request timed out", details)
}

func NewConnectionFailure(details string) *Error {
	return newError(ConnectionFailure, "Connection failed", details)
}

func NewRateLimited(details string) *Error {
	return newError(RateLimited, "Rate limit exceeded", details)
}

func NewAuthFailure(details string) *Error {
	return newError(AuthFailure, "Authentication failed", details)
}

// NewUpstream covers structured upstream API errors. The upstream-provided
// status is kept when present; a zero code falls back to 500.
func NewUpstream(status int, details string) *Error {
	e := newError(Upstream, "OpenAI API error", details)
	if status != 0 {
		e.Status = status
	}
	return e
}

func NewInternal(details string) *Error {
	return newError(Internal, "An unexpected error occurred", details)
}
