package build

import (
	"fmt"
	"iter"
)

// Iterator is a pull-style source of elements. Next returns false once the
// source is exhausted.
type Iterator[T any] interface {
	Next() (T, bool)
}

// SizeHinter is optionally implemented by an Iterator to report bounds on
// the number of elements it has left. upper is meaningful only when
// bounded is true.
//
// Hints are an optimization: a wrong hint may make TryFromIter give up
// early but never makes it return a short array.
type SizeHinter interface {
	SizeHint() (lower, upper int, bounded bool)
}

// TryFromIter builds an n-element array from the first n elements of it.
//
// If it reports (via SizeHinter) that fewer than n elements remain,
// TryFromIter returns (nil, false) without pulling anything. Otherwise it
// pulls elements one at a time and returns (nil, false) if it runs out
// early; elements pulled up to that point are dropped. Never more than n
// elements are pulled.
func TryFromIter[T any](n int, it Iterator[T]) ([]T, bool) {
	if h, ok := it.(SizeHinter); ok {
		if _, upper, bounded := h.SizeHint(); bounded && upper < n {
			return nil, false
		}
	}

	arr, err := TryWith(n, func() (T, error) {
		v, ok := it.Next()
		if !ok {
			return v, errMissingElement
		}
		return v, nil
	})
	if err != nil {
		return nil, false
	}
	return arr, true
}

// FromIter is TryFromIter that panics with ErrTooFewElements when it
// cannot supply n elements.
func FromIter[T any](n int, it Iterator[T]) []T {
	arr, ok := TryFromIter(n, it)
	if !ok {
		panic(fmt.Errorf("%w: need %d", ErrTooFewElements, n))
	}
	return arr
}

// TryFromSeq builds an n-element array from the first n elements of seq.
// seq is stopped after at most n elements; it returns (nil, false) if seq
// ends early.
func TryFromSeq[T any](n int, seq iter.Seq[T]) ([]T, bool) {
	it := PullSeq(seq)
	defer it.Stop()
	return TryFromIter[T](n, it)
}

// FromSeq is TryFromSeq that panics with ErrTooFewElements when seq ends
// early.
func FromSeq[T any](n int, seq iter.Seq[T]) []T {
	arr, ok := TryFromSeq(n, seq)
	if !ok {
		panic(fmt.Errorf("%w: need %d", ErrTooFewElements, n))
	}
	return arr
}

// SliceIter iterates over a slice and reports an exact size hint.
type SliceIter[T any] struct {
	items []T
}

// NewSliceIter returns an iterator over items.
func NewSliceIter[T any](items []T) *SliceIter[T] {
	return &SliceIter[T]{items: items}
}

// Next implements Iterator.
func (s *SliceIter[T]) Next() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	v := s.items[0]
	s.items = s.items[1:]
	return v, true
}

// SizeHint implements SizeHinter.
func (s *SliceIter[T]) SizeHint() (lower, upper int, bounded bool) {
	return len(s.items), len(s.items), true
}

// SeqIter adapts an iter.Seq to Iterator. It gives no size hint.
// Stop must be called once the iterator is no longer needed.
type SeqIter[T any] struct {
	next func() (T, bool)
	stop func()
}

// PullSeq starts pulling from seq.
func PullSeq[T any](seq iter.Seq[T]) *SeqIter[T] {
	next, stop := iter.Pull(seq)
	return &SeqIter[T]{next: next, stop: stop}
}

// Next implements Iterator.
func (s *SeqIter[T]) Next() (T, bool) { return s.next() }

// Stop releases the underlying sequence.
func (s *SeqIter[T]) Stop() { s.stop() }
