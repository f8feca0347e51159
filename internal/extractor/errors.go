package extractor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind represents the category of failure during an extraction step
type ErrorKind string

const (
	// KindConfig indicates the client was constructed with unusable configuration
	KindConfig ErrorKind = "config"
	// KindInvalidID indicates a blank coin identifier
	KindInvalidID ErrorKind = "invalid_id"
	// KindNotFound indicates the coin identifier is absent from the directory
	KindNotFound ErrorKind = "not_found"
	// KindNetwork indicates a network-level error (connection refused, DNS, etc.)
	KindNetwork ErrorKind = "network"
	// KindTimeout indicates the request timed out or its context expired
	KindTimeout ErrorKind = "timeout"
	// KindRateLimit indicates the provider rejected the request with HTTP 429
	KindRateLimit ErrorKind = "rate_limit"
	// KindServer indicates a server error (HTTP 5xx)
	KindServer ErrorKind = "server"
	// KindClient indicates a client error (HTTP 4xx except 429)
	KindClient ErrorKind = "client"
	// KindDecode indicates the response body was not the expected JSON shape
	KindDecode ErrorKind = "decode"
	// KindEmptyData indicates the market range query returned no usable payload
	KindEmptyData ErrorKind = "empty_data"
	// KindUnknown indicates an error of unknown type
	KindUnknown ErrorKind = "unknown"
)

// Error is the structured failure carried between the steps of an extraction.
// It never crosses a client's public boundary.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an error of the given kind
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewNetworkError creates a network error
func NewNetworkError(cause error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: "network request failed",
		Cause:   cause,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(cause error) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: "request timed out",
		Cause:   cause,
	}
}

// NewDecodeError creates a decode error
func NewDecodeError(message string, cause error) *Error {
	return &Error{
		Kind:    KindDecode,
		Message: message,
		Cause:   cause,
	}
}

// ClassifyHTTPError classifies a non-2xx HTTP status code
func ClassifyHTTPError(statusCode int) *Error {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimit, StatusCode: statusCode, Message: "rate limit exceeded"}
	case statusCode >= 500:
		return &Error{Kind: KindServer, StatusCode: statusCode, Message: "server returned an error"}
	case statusCode >= 400:
		return &Error{Kind: KindClient, StatusCode: statusCode, Message: fmt.Sprintf("client error: HTTP %d", statusCode)}
	default:
		return &Error{Kind: KindUnknown, StatusCode: statusCode, Message: fmt.Sprintf("unexpected status code: %d", statusCode)}
	}
}

// ClassifyTransportError classifies an error returned before any HTTP status
// was received
func ClassifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(err)
	}
	return NewNetworkError(err)
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
