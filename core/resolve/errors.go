package resolve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ServiceError is a failure reported by, or on the way to, a lookup service.
type ServiceError struct {
	// Op is the capability that failed ("search" or "summary").
	Op string
	// StatusCode is the HTTP status, 0 for transport failures.
	StatusCode int
	// Transient marks failures worth retrying.
	Transient bool
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewStatusError builds a ServiceError from an HTTP status code.
// 429 and 5xx are transient; every other status is not.
func NewStatusError(op string, status int, err error) *ServiceError {
	return &ServiceError{
		Op:         op,
		StatusCode: status,
		Transient:  IsTransientStatus(status),
		Err:        err,
	}
}

// NewTransportError wraps a transport-level failure (dial, TLS, timeout, reset).
// Transport failures are transient unless the caller's context was cancelled.
func NewTransportError(op string, err error) *ServiceError {
	transient := !errors.Is(err, context.Canceled)
	return &ServiceError{Op: op, Transient: transient, Err: err}
}

// NewMalformedError reports a response that could not be understood.
// A malformed body is never retried, even with a 200 status.
func NewMalformedError(op string, err error) *ServiceError {
	return &ServiceError{Op: op, StatusCode: http.StatusOK, Err: err}
}

// IsTransientStatus reports whether an HTTP status warrants a retry.
func IsTransientStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// IsTransient reports whether err represents a condition that warrants an
// automatic retry. Context cancellation is never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Transient
	}
	return isTransientTransport(err)
}

func isTransientTransport(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	message := strings.ToLower(err.Error())
	for _, token := range []string{
		"connection reset",
		"connection refused",
		"temporary failure",
		"broken pipe",
		"unexpected eof",
		"awaiting headers",
	} {
		if strings.Contains(message, token) {
			return true
		}
	}
	return false
}
