package seqfu

import (
	"fmt"
	"strconv"
	"strings"
)

// Stats is the data row of a `seqfu stats` report.
type Stats struct {
	// File is the label of the summarized input ("-" for stdin).
	File string

	// Count is the number of sequences in the input.
	Count int
}

// MalformedReportError reports a stats report that does not match the
// expected header-plus-data-line, tab-separated shape.
type MalformedReportError struct {
	Reason string
	Err    error
}

func (e *MalformedReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed seqfu stats report; %s; %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed seqfu stats report; %s", e.Reason)
}

func (e *MalformedReportError) Unwrap() error {
	return e.Err
}

// ParseStats extracts the sequence count from a `seqfu stats` report.
//
// The report must have a header line followed by a data line whose
// tab-separated field at index 1 is an integer count. Only the first data
// line is read.
func ParseStats(report []byte) (Stats, error) {
	text := strings.TrimSpace(string(report))
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return Stats{}, &MalformedReportError{Reason: "missing header or data line"}
	}

	fields := strings.Split(strings.TrimRight(lines[1], "\r"), "\t")
	if len(fields) < 2 {
		return Stats{}, &MalformedReportError{Reason: "missing count field"}
	}

	count, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Stats{}, &MalformedReportError{Reason: "invalid count field", Err: err}
	}
	if count < 0 {
		return Stats{}, &MalformedReportError{Reason: fmt.Sprintf("negative count %d", count)}
	}

	return Stats{File: fields[0], Count: count}, nil
}
