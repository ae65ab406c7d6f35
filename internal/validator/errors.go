package validator

import (
	"errors"
	"fmt"
)

// ErrInsufficientReads is returned by Validate when the input holds fewer
// reads than required. The outcome message has already been written.
var ErrInsufficientReads = errors.New("insufficient reads")

// PreconditionError reports a request that cannot be validated.
type PreconditionError struct {
	Field   string
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// CopyError reports a failure promoting the input to the output path.
type CopyError struct {
	Src string
	Dst string
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to promote %q to %q; %v", e.Src, e.Dst, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}
