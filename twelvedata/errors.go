package twelvedata

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds returned by the API. Use errors.Is against an *APIError.
var (
	// ErrBadRequest indicates a 400 response
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized indicates a missing or invalid API key (401)
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
	// ErrForbidden indicates the plan does not cover the resource (403)
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the resource or symbol does not exist (404)
	ErrNotFound = errors.New("not found")
	// ErrParameterTooLong indicates a request parameter exceeded its limit (414)
	ErrParameterTooLong = errors.New("parameter too long")
	// ErrRateLimit indicates the API credits for the current minute ran out (429)
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrInternalServer indicates a 500 response
	ErrInternalServer = errors.New("internal server error")
	// ErrServer indicates a 5xx response other than 500
	ErrServer = errors.New("server error")

	// ErrInvalidAPIKey is an alias for ErrUnauthorized.
	ErrInvalidAPIKey = ErrUnauthorized

	// ErrMalformedResponse is matched by every *MalformedResponseError.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrTransport is matched by every *TransportError.
	ErrTransport = errors.New("transport failure")
)

// Kind classifies an APIError.
type Kind int

const (
	KindGeneric Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindParameterTooLong
	KindRateLimit
	KindInternalServer
	KindServer
)

var kindErrors = map[Kind]error{
	KindBadRequest:       ErrBadRequest,
	KindUnauthorized:     ErrUnauthorized,
	KindForbidden:        ErrForbidden,
	KindNotFound:         ErrNotFound,
	KindParameterTooLong: ErrParameterTooLong,
	KindRateLimit:        ErrRateLimit,
	KindInternalServer:   ErrInternalServer,
	KindServer:           ErrServer,
}

// String returns a short name for the kind.
func (k Kind) String() string {
	if err, ok := kindErrors[k]; ok {
		return err.Error()
	}
	return "api error"
}

// KindForCode maps an HTTP status or API error code to its Kind.
func KindForCode(code int) Kind {
	switch code {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusRequestURITooLong:
		return KindParameterTooLong
	case http.StatusTooManyRequests:
		return KindRateLimit
	case http.StatusInternalServerError:
		return KindInternalServer
	}
	if code >= 500 {
		return KindServer
	}
	return KindGeneric
}

// APIError is an error reported by the API, either through the HTTP status
// or through an embedded {"status":"error"} envelope.
type APIError struct {
	Code    int
	Message string
	Kind    Kind
}

// NewAPIError builds an APIError with its kind derived from code.
func NewAPIError(code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Kind:    KindForCode(code),
	}
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("twelvedata API error: code %d (%s): %s", e.Code, e.Kind, e.Message)
}

// Unwrap returns the sentinel for the error kind, if any.
func (e *APIError) Unwrap() error {
	return kindErrors[e.Kind]
}

// IsRateLimit checks if the error indicates the request budget ran out
func (e *APIError) IsRateLimit() bool {
	return e.Kind == KindRateLimit
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.Kind == KindUnauthorized
}

// TransportError wraps a network level failure (connection, timeout, I/O).
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("twelvedata %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// MalformedResponseError is returned when a body that should be JSON cannot
// be decoded.
type MalformedResponseError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("malformed response (status %d)", e.StatusCode)
}

func (e *MalformedResponseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedResponse}
	}
	return []error{ErrMalformedResponse, e.Err}
}
