package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTerm        = errors.New("loan term must be at least one month")
	ErrInvalidPrincipal   = errors.New("loan principal must be greater than zero")
	ErrInvalidRate        = errors.New("interest rate cannot be negative")
	ErrSubmissionInFlight = errors.New("a submission is already being processed")
	ErrReportNotFound     = errors.New("report not found")
)

// TransportUserMessage is the only text users see for a failed prediction call.
const TransportUserMessage = "Unable to process prediction. Please try again."

// ValidationError rejects a form before any network call is made.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TransportError covers a failed prediction call: network failure,
// non-success status or an unreadable body. Detail holds the message
// supplied by the service, if any.
type TransportError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("prediction service error (status %d): %s", e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("prediction service error (status %d)", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("prediction service unreachable: %v", e.Err)
	default:
		return "prediction service error: " + e.Detail
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
