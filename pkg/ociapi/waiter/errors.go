package waiter

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
)

// ErrMaximumWaitTimeExceeded is matched by every *TimeoutError.
var ErrMaximumWaitTimeExceeded = errors.New("maximum wait time exceeded")

// TimeoutError is returned when the condition was not met within MaxWaitSeconds.
type TimeoutError struct {
	Elapsed time.Duration
	MaxWait time.Duration
	Polls   int
	// LastState is the lifecycle state seen by the last fetch, if any.
	LastState string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%v: waited %s of %s over %d polls, last lifecycle state %q",
		ErrMaximumWaitTimeExceeded, e.Elapsed.Round(time.Millisecond), e.MaxWait, e.Polls, e.LastState)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrMaximumWaitTimeExceeded
}

// CompositeOperationError is returned when a mutating call was accepted but
// waiting for the resulting state failed. PartialResults holds the responses of
// the calls that completed, usually just the mutating call.
type CompositeOperationError struct {
	PartialResults []*ociapi.Response
	Err            error
}

func (e *CompositeOperationError) Error() string {
	return "composite operation failed after the mutating call was accepted: " + e.Err.Error()
}

func (e *CompositeOperationError) Unwrap() error {
	return e.Err
}

func composite(err error, partial ...*ociapi.Response) *CompositeOperationError {
	return &CompositeOperationError{PartialResults: partial, Err: err}
}
