package validator

import "fmt"

// Status is the result of a validation run.
type Status int

const (
	// StatusValidated means the probe reached the required read count.
	StatusValidated Status = iota + 1

	// StatusInsufficient means the input ran out of reads before the bound.
	StatusInsufficient

	// StatusProbeFailed means the read count could not be determined.
	StatusProbeFailed
)

// String returns the lowercase status name used in logs and metrics.
func (s Status) String() string {
	switch s {
	case StatusValidated:
		return "validated"
	case StatusInsufficient:
		return "insufficient"
	case StatusProbeFailed:
		return "probe_failed"
	default:
		return "unknown"
	}
}

// Outcome is the decision reached for one input file.
type Outcome struct {
	Status   Status
	Count    int
	MinReads int

	// Err is the probe failure; set only for StatusProbeFailed.
	Err error
}

// Validated returns an outcome for a probe that reached minReads.
func Validated(count, minReads int) Outcome {
	return Outcome{Status: StatusValidated, Count: count, MinReads: minReads}
}

// Insufficient returns an outcome for a probe that stopped short of minReads.
func Insufficient(count, minReads int) Outcome {
	return Outcome{Status: StatusInsufficient, Count: count, MinReads: minReads}
}

// ProbeFailed returns an outcome for a probe that could not produce a count.
func ProbeFailed(minReads int, err error) Outcome {
	return Outcome{Status: StatusProbeFailed, MinReads: minReads, Err: err}
}

// Decide compares a clamped probe count against the required minimum.
// The probe never reports more than minReads, so equality is the only pass.
func Decide(count, minReads int) Outcome {
	if count == minReads {
		return Validated(count, minReads)
	}
	return Insufficient(count, minReads)
}

// OK reports whether the outcome permits promotion.
func (o Outcome) OK() bool {
	return o.Status == StatusValidated
}

// Message returns the single line reported to the user for this outcome.
func (o Outcome) Message() string {
	switch o.Status {
	case StatusValidated:
		return fmt.Sprintf("File copied: contains at least %d reads", o.MinReads)
	case StatusInsufficient:
		return fmt.Sprintf("No action taken: file contains %d reads (requirement: %d)", o.Count, o.MinReads)
	case StatusProbeFailed:
		if o.Err != nil {
			return o.Err.Error()
		}
		return "read count probe failed"
	default:
		return "no validation outcome"
	}
}
