package client

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch marks a failed read: network error or non-2xx response.
	ErrFetch = errors.New("fetch failed")
	// ErrOperationFailed marks a failed write other than a credential
	// rejection.
	ErrOperationFailed = errors.New("operation failed")
	// ErrCredentialRejected marks a 401 on a credential-guarded delete.
	ErrCredentialRejected = errors.New("credential rejected")
	// ErrUnavailable marks a request that got no response at all.
	ErrUnavailable = errors.New("server unavailable")
)

// StatusError describes a failed request. Code is zero when no response
// was received, in which case Err holds the transport error.
type StatusError struct {
	Op      string
	Code    int
	Message string
	Err     error

	kind error
}

func (e *StatusError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.kind, e.Err)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s: %v: status %d", e.Op, e.kind, e.Code)
	}
	return fmt.Sprintf("%s: %v: status %d: %s", e.Op, e.kind, e.Code, e.Message)
}

func (e *StatusError) Unwrap() []error {
	errs := []error{e.kind}
	if e.Err != nil {
		errs = append(errs, ErrUnavailable, e.Err)
	}
	return errs
}

// RejectedError is returned when the server refuses the credential sent
// with a guarded delete. Message is the server's text, shown verbatim.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return "credential rejected: " + e.Message
}

func (e *RejectedError) Unwrap() error { return ErrCredentialRejected }

// DefaultRejectionMessage is used when a 401 arrives without a message.
const DefaultRejectionMessage = "Incorrect password. Please try again."

func newRejectedError(msg string) *RejectedError {
	if msg == "" {
		msg = DefaultRejectionMessage
	}
	return &RejectedError{Message: msg}
}
