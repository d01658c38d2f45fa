// ABOUTME: Error taxonomy for the OurPR plan store client
// ABOUTME: Distinguishes missing credentials, server rejections, and transport failures
package ourpr

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated means no usable session credential exists at call
// time. Operations short-circuit on it before or instead of any network
// traffic; callers roll back any optimistic state.
var ErrUnauthenticated = errors.New("not logged in to OurPR")

// RemoteError is a non-success response from the plan store. Message holds
// whatever human-readable detail the response body carried.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("plan store rejected request (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}

// UnreachableError wraps a transport-level failure. Callers treat it the
// same as a rejection for rollback purposes.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("plan store unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}
