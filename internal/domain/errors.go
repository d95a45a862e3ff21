package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord is wrapped by every RecordError.
	ErrMalformedRecord = errors.New("malformed draw record")

	// ErrNoReliableAlignment is returned when two marker-free captures cannot
	// be paired with enough confidence.
	ErrNoReliableAlignment = errors.New("no reliable alignment")
)

// RecordError identifies a draw row that could not be turned into a DrawRecord.
type RecordError struct {
	Index  int
	Field  string
	Value  any
	Reason string
}

func (e *RecordError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("draw row %d: %s %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("draw row %d: %s %s (got %v)", e.Index, e.Field, e.Reason, e.Value)
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }
