// ABOUTME: Error taxonomy for the daily aggregation run.
// ABOUTME: Typed errors unwrap to sentinels so callers can use errors.Is.
package models

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrDuplicateKey      = errors.New("duplicate date key")
)

// SourceError reports a dataset that could not be read.
type SourceError struct {
	Source Source
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s source unavailable: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}

// InvalidTimestampError reports a row whose instant cannot be interpreted.
// Row is the zero-based position in the source.
type InvalidTimestampError struct {
	Source Source
	Row    int
	Value  string
}

func (e *InvalidTimestampError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s row %d: missing timestamp", e.Source, e.Row)
	}
	return fmt.Sprintf("%s row %d: invalid timestamp %q", e.Source, e.Row, e.Value)
}

func (e *InvalidTimestampError) Is(target error) bool {
	return target == ErrInvalidTimestamp
}

// DuplicateKeyError reports an auxiliary source with more than one row for a date.
type DuplicateKeyError struct {
	Source Source
	Date   Date
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s has more than one row for %s", e.Source, e.Date)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}
