// Package apperror holds the engine's typed failure taxonomy. Errors
// stay strongly typed internally and are only flattened to a public
// phrase at the HTTP edge via PublicErrorMessage.
package apperror

import (
	"errors"
	"fmt"
)

// PublicUnavailable is the only phrase end-users ever see for upstream
// or configuration trouble. It must not leak env var names, sheet ids
// or HTTP statuses.
const PublicUnavailable = "The character codex is temporarily unavailable. Please try again soon."

// MissingConfigError means no sheet identifier is configured. Fatal for
// the load; the cache is left untouched.
type MissingConfigError struct{}

func (e *MissingConfigError) Error() string {
	return "sheet identifier not configured"
}

// BadEnvelopeError means the upstream body could not be unwrapped from
// the GViz function call or parsed as JSON. Candidate-level.
type BadEnvelopeError struct {
	Reason string
}

func (e *BadEnvelopeError) Error() string {
	return fmt.Sprintf("bad gviz envelope: %s", e.Reason)
}

// UpstreamFailureError is a non-2xx response from the sheet endpoint.
// Candidate-level.
type UpstreamFailureError struct {
	Status int
}

func (e *UpstreamFailureError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

// UnavailableUpstreamError is the terminal failure after every
// candidate and the fallback roster have been exhausted.
type UnavailableUpstreamError struct {
	Cause error
}

func (e *UnavailableUpstreamError) Error() string {
	if e.Cause == nil {
		return "character feed unavailable"
	}
	return fmt.Sprintf("character feed unavailable: %v", e.Cause)
}

func (e *UnavailableUpstreamError) Unwrap() error {
	return e.Cause
}

// PublicErrorMessage maps any engine error to a single short phrase,
// hiding configuration and network detail.
func PublicErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		missing     *MissingConfigError
		envelope    *BadEnvelopeError
		upstream    *UpstreamFailureError
		unavailable *UnavailableUpstreamError
	)
	switch {
	case errors.As(err, &missing),
		errors.As(err, &envelope),
		errors.As(err, &upstream),
		errors.As(err, &unavailable):
		return PublicUnavailable
	}
	return "Something went wrong. Please try again."
}
