package validator

import (
	"fmt"
	"os"
)

// Request identifies one file to gate and where to promote it.
type Request struct {
	InputPath  string
	OutputPath string
	MinReads   int
}

// Check verifies the preconditions Validate relies on: the input is an
// existing regular file, the output is named, and MinReads is positive.
func (r Request) Check() error {
	info, err := os.Stat(r.InputPath)
	if err != nil || !info.Mode().IsRegular() {
		return &PreconditionError{
			Field:   "input",
			Message: fmt.Sprintf("Input file '%s' does not exist", r.InputPath),
		}
	}

	if r.OutputPath == "" {
		return &PreconditionError{
			Field:   "output",
			Message: "Output path must not be empty",
		}
	}

	if r.MinReads <= 0 {
		return &PreconditionError{
			Field:   "minreads",
			Message: "Minimum reads must be greater than 0",
		}
	}

	return nil
}
