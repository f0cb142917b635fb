package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent interaction rules being violated.
// These are distinct from transport failures.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Conversation Errors.

	// ErrEmptyQuestion indicates a question with no visible characters.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrQuestionPending indicates a question is already awaiting its answer.
	ErrQuestionPending = errors.New("a question is already pending")

	// Upload Errors.

	// ErrNotPDF indicates a file without the .pdf extension was chosen.
	ErrNotPDF = errors.New("only PDF files are accepted")

	// ErrNoCandidates indicates a drop contained no PDF files.
	ErrNoCandidates = errors.New("no PDF files in drop")

	// ErrUploadInFlight indicates the upload surface cannot change while a transfer runs.
	ErrUploadInFlight = errors.New("upload in progress")

	// ErrInvalidTransition indicates an action not allowed in the current upload phase.
	ErrInvalidTransition = errors.New("invalid upload transition")
)

// TransportError reports that no response was received from the service.
type TransportError struct {
	// Op is the operation that failed (e.g. "list documents").
	Op string

	// Err is the underlying network error.
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: service unreachable: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError reports a response that was received but not usable:
// a non-2xx status or a body that could not be decoded.
type ServiceError struct {
	// Op is the operation that failed.
	Op string

	// Status is the HTTP status code.
	Status int

	// Detail is the human-readable reason sent by the service, if any.
	Detail string
}

// Error implements error.
func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

// Detail extracts the service-provided detail from err.
// It returns false when err carries no detail, including transport failures.
func Detail(err error) (string, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Detail != "" {
		return svcErr.Detail, true
	}
	return "", false
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
