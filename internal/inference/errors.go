package inference

import (
	"errors"
	"fmt"
)

// ErrorKind classifies inference failures for the orchestration layer.
type ErrorKind string

const (
	// KindServiceUnavailable covers network failures, provider outages and
	// timed-out calls.
	KindServiceUnavailable ErrorKind = "service_unavailable"

	// KindMalformedResponse means the service answered, but the payload
	// could not be parsed against the declared schema contract.
	KindMalformedResponse ErrorKind = "malformed_response"

	// KindUploadFailed means the input artifact never made it to storage,
	// so no inference call was issued.
	KindUploadFailed ErrorKind = "upload_failed"

	// KindPersistenceFailed means inference succeeded but the conditional
	// side effect (a store write) did not. The result is still displayable.
	KindPersistenceFailed ErrorKind = "persistence_failed"
)

// Error is the taxonomy error for the inference boundary.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("inference %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("inference %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// ServiceUnavailable wraps err as a KindServiceUnavailable failure.
func ServiceUnavailable(err error) *Error {
	return &Error{Kind: KindServiceUnavailable, Err: err}
}

// MalformedResponse wraps err as a KindMalformedResponse failure.
func MalformedResponse(err error) *Error {
	return &Error{Kind: KindMalformedResponse, Err: err}
}

// KindOf extracts the taxonomy kind from an error chain. Unclassified
// errors report as ServiceUnavailable — the caller cannot distinguish them
// from a provider outage anyway.
func KindOf(err error) ErrorKind {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return KindServiceUnavailable
}
