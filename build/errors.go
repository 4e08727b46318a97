package build

import (
	"errors"
	"strconv"
)

var (
	// ErrTooFewElements is the panic cause of FromIter and FromSeq when the
	// source runs out before the array is complete.
	ErrTooFewElements = errors.New("build: too few elements")

	// errMissingElement is the producer failure used internally by the
	// iterator-driven builders.
	errMissingElement = errors.New("build: missing element")
)

// IndexedError is returned when a producer fails.
//
// Index is the zero-based position of the element that was being produced.
// Err is the producer's original error.
type IndexedError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *IndexedError) Error() string {
	// Example: error building array at index 3: strconv.Atoi: parsing "x": invalid syntax
	msg := "error building array at index " + strconv.Itoa(e.Index)
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

// Unwrap returns the producer's error.
func (e *IndexedError) Unwrap() error { return e.Err }

// mustComplete unwraps the result of an infallible construction. Its
// producer never returns an error, so a non-nil err is a bug in this
// package rather than something to report.
func mustComplete[T any](arr []T, err error) []T {
	if err != nil {
		panic("build: unreachable: infallible producer failed: " + err.Error())
	}
	return arr
}
