package client

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestFailed is a response the server actually produced, carrying the
// status code and the server's own message. Transport problems are never a
// RequestFailed; see NetworkUnavailable.
type RequestFailed struct {
	StatusCode int
	Message    string
}

func (e *RequestFailed) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}

func (e *RequestFailed) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *RequestFailed) AccessDenied() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func (e *RequestFailed) Conflict() bool {
	return e.StatusCode == http.StatusConflict
}

// NetworkUnavailable means the request never produced a server response.
// Callers must treat state as unknown, not as absent.
type NetworkUnavailable struct {
	Err error
}

func (e *NetworkUnavailable) Error() string {
	return fmt.Sprintf("network unavailable: %v", e.Err)
}

func (e *NetworkUnavailable) Unwrap() error { return e.Err }

// ValidationError is a pre-submission rejection; nothing was sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsNotFound reports whether err is a server 404.
func IsNotFound(err error) bool {
	var rf *RequestFailed
	return errors.As(err, &rf) && rf.NotFound()
}

// IsConflict reports whether err is a server 409.
func IsConflict(err error) bool {
	var rf *RequestFailed
	return errors.As(err, &rf) && rf.Conflict()
}

// IsNetworkUnavailable reports whether err is a transport failure with no
// server response behind it.
func IsNetworkUnavailable(err error) bool {
	var nu *NetworkUnavailable
	return errors.As(err, &nu)
}
