package seniverse

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors surfaced to callers of the client. Match with errors.Is.
var (
	// ErrNotConfigured is returned when no API key is set. No request is sent.
	ErrNotConfigured = errors.New("api key not configured")

	// ErrInvalidInput marks input rejected before any request is sent.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRequestFailed covers non-2xx responses, transport errors and
	// undecodable bodies.
	ErrRequestFailed = errors.New("request failed")

	// ErrNoData is returned when a well-formed response lacks the expected
	// data array.
	ErrNoData = errors.New("no data in response")
)

// RequestError describes a failed vendor call. It matches ErrRequestFailed.
type RequestError struct {
	// Path is the endpoint path relative to the base URL.
	Path string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Status is the vendor status message from the error body, if any.
	Status string

	// Err is the underlying transport or decode error, if any.
	Err error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Status != "":
		return fmt.Sprintf("%s: %d %s: %s", e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Status)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %d %s", e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	default:
		return e.Path + ": " + ErrRequestFailed.Error()
	}
}

// Is reports ErrRequestFailed as a match.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
