package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies how a request failed. The distinction drives the
// offline behavior: only failures where the server never answered count as
// connectivity loss.
type ErrorKind int

const (
	// KindServerResponded means the server answered with a non-2xx status.
	// The server is reachable; the request itself was rejected.
	KindServerResponded ErrorKind = iota
	// KindNoResponse means the request went out but no response arrived
	// (connection refused, timeout, DNS failure).
	KindNoResponse
	// KindRequestSetupFailed means the request could not be constructed or
	// dispatched at all.
	KindRequestSetupFailed
)

// RequestError is the single error type returned by Client calls.
type RequestError struct {
	Kind       ErrorKind
	StatusCode int
	// Message is the human-readable error the server returned, when it
	// responded with one.
	Message string
	// TokenExpired is set when the server rejected the access token as
	// expired, signalling that a refresh may succeed.
	TokenExpired bool
	Err          error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindServerResponded:
		if e.Message != "" {
			return fmt.Sprintf("server responded %d: %s", e.StatusCode, e.Message)
		}
		return fmt.Sprintf("server responded %d", e.StatusCode)
	case KindNoResponse:
		return fmt.Sprintf("no response from server: %v", e.Err)
	default:
		return fmt.Sprintf("request setup failed: %v", e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNoResponse reports whether err is a RequestError of kind KindNoResponse.
func IsNoResponse(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Kind == KindNoResponse
}

// IsServerResponded reports whether err is a RequestError of kind
// KindServerResponded.
func IsServerResponded(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Kind == KindServerResponded
}
