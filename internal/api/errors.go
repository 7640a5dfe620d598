package api

import "fmt"

// ValidationError reports input rejected locally, before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ServiceError reports a call that completed but returned a non-success
// status. Message carries the service-supplied error text when present.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("service error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("service error (status %d)", e.Status)
}

// TransportError reports a call that could not complete at all:
// connectivity failures, request construction, or undecodable responses.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
