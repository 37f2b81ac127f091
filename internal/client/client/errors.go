package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API call.
type Kind int

const (
	KindUnknown Kind = iota
	KindRateLimited
	KindUnauthorized
	KindNotFound
	KindNetworkUnreachable
	KindServerError
	KindMalformedResponse
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "RateLimited"
	case KindUnauthorized:
		return "Unauthorized"
	case KindNotFound:
		return "NotFound"
	case KindNetworkUnreachable:
		return "NetworkUnreachable"
	case KindServerError:
		return "ServerError"
	case KindMalformedResponse:
		return "MalformedResponse"
	case KindInvalidRequest:
		return "InvalidRequest"
	default:
		return "Unknown"
	}
}

var (
	ErrRateLimited       = errors.New("rate limited")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrUnavailable       = errors.New("server unavailable")
	ErrServerError       = errors.New("server error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrInvalidRequest    = errors.New("invalid request")
)

func (k Kind) sentinel() error {
	switch k {
	case KindRateLimited:
		return ErrRateLimited
	case KindUnauthorized:
		return ErrUnauthorized
	case KindNotFound:
		return ErrNotFound
	case KindNetworkUnreachable:
		return ErrUnavailable
	case KindServerError:
		return ErrServerError
	case KindMalformedResponse:
		return ErrMalformedResponse
	case KindInvalidRequest:
		return ErrInvalidRequest
	default:
		return nil
	}
}

// APIError is the classified outcome of a failed call. It matches the
// sentinel of its Kind with errors.Is.
type APIError struct {
	Kind Kind
	// Status is the HTTP status, 0 when no response was received or the
	// failure was detected locally.
	Status int
	// RetryAfter is set for KindRateLimited only, in seconds.
	RetryAfter int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	switch {
	case e.Kind == KindRateLimited:
		return fmt.Sprintf("%s: retry after %ds: %s", e.Kind, e.RetryAfter, msg)
	case e.Status != 0:
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the Kind of err, or KindUnknown if err is not an *APIError.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// RetryAfterOf returns the retry-after seconds carried by a rate-limit error.
func RetryAfterOf(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind == KindRateLimited {
		return apiErr.RetryAfter, true
	}
	return 0, false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func malformed(format string, args ...any) *APIError {
	return &APIError{Kind: KindMalformedResponse, Message: fmt.Sprintf(format, args...)}
}
