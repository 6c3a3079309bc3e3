package amadeus

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates a caller-side contract violation, such as
// supplying none (or more than one) of the hotel lookup selectors. These
// errors are detected before any network call is made.
var ErrInvalidInput = errors.New("invalid input")

// UpstreamError is returned when the supplier answers with a non-2xx status
// or the call times out. It carries the status and raw body so failures are
// diagnosable at the catch site.
type UpstreamError struct {
	Operation string // logical operation, e.g. "search flights"
	Status    int    // HTTP status, 0 for transport-level failures
	Body      string // raw response body, may be empty
	Err       error  // underlying transport error, if any
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("amadeus %s: status %d: %s", e.Operation, e.Status, e.Body)
	}
	return fmt.Sprintf("amadeus %s: %v", e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
