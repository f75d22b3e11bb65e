// Package apperr defines the typed error and warning values produced while
// loading, validating, and scheduling a task set.
package apperr

import (
	"errors"
	"fmt"
)

// ErrMissingFile is the sentinel wrapped by an IoError when a required
// input file does not exist, distinguishing "not found" from other I/O
// failures for callers using errors.Is.
var ErrMissingFile = errors.New("apperr: required file does not exist")

// InputError reports a structural or semantic problem in an input file: a
// missing field, a non-numeric token, a non-positive period, or an
// exhausted execution-time trace.
type InputError struct {
	Source      string // file the record came from, e.g. "tasks.txt"
	RecordIndex int    // zero-based index of the offending record
	Reason      string
	Err         error // wrapped cause, if any; may be nil
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: record %d: %s: %v", e.Source, e.RecordIndex, e.Reason, e.Err)
	}

	return fmt.Sprintf("%s: record %d: %s", e.Source, e.RecordIndex, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// NewInputError constructs an InputError with no wrapped cause.
func NewInputError(source string, recordIndex int, reason string) *InputError {
	return &InputError{Source: source, RecordIndex: recordIndex, Reason: reason}
}

// WrapInputError constructs an InputError wrapping an underlying parse error.
func WrapInputError(source string, recordIndex int, reason string, err error) *InputError {
	return &InputError{Source: source, RecordIndex: recordIndex, Reason: reason, Err: err}
}

// IoError reports that a required file could not be opened, read, or
// written.
type IoError struct {
	Path string
	Op   string // operation that failed, e.g. "open", "create", "write", "flush"
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// NewIoError constructs an IoError.
func NewIoError(op, path string, err error) *IoError {
	return &IoError{Op: op, Path: path, Err: err}
}

// SchedulabilityWarning is a non-fatal diagnostic: the computed utilization
// makes the derived schedule a best-effort one. The simulation proceeds
// regardless.
type SchedulabilityWarning struct {
	Reason string
	ULo    float64
	UHi    float64
}

func (w SchedulabilityWarning) String() string {
	return fmt.Sprintf("%s (U_LO=%.4f U_HI=%.4f)", w.Reason, w.ULo, w.UHi)
}

// NumericWarning is a non-fatal diagnostic: a task's period required
// rounding to the nearest integer before the hyperperiod could be computed.
type NumericWarning struct {
	TaskName string
	Supplied float64
	Rounded  int64
}

func (w NumericWarning) String() string {
	return fmt.Sprintf("period for task %s rounded from %.9f to %d", w.TaskName, w.Supplied, w.Rounded)
}
