package builder

import (
	"errors"
	"fmt"
	"iter"

	"github.com/sghaida/brownstone/internal/fixedbuf"
)

var (
	// ErrOverflow is matched (via errors.Is) by every OverflowError.
	ErrOverflow = errors.New("builder: push overflow")

	// ErrIncomplete is the panic cause of Finish when the array still has
	// unwritten elements.
	ErrIncomplete = errors.New("builder: finish incomplete")
)

// OverflowError is returned by TryPush when the builder is already full.
//
// Value is the exact element that could not be pushed; ownership goes back
// to the caller.
type OverflowError[T any] struct{ Value T }

// Error implements the error interface.
func (e OverflowError[T]) Error() string { return ErrOverflow.Error() }

// Is reports ErrOverflow as a match.
func (e OverflowError[T]) Is(target error) bool { return target == ErrOverflow }

// PushResult tells whether the array is full after a successful push.
type PushResult uint8

const (
	// NotFull means further pushes are accepted.
	NotFull PushResult = iota
	// Full means the array is complete and can be taken with Finish.
	Full
)

// String implements fmt.Stringer.
func (r PushResult) String() string {
	switch r {
	case NotFull:
		return "NotFull"
	case Full:
		return "Full"
	default:
		return fmt.Sprintf("PushResult(%d)", uint8(r))
	}
}

// Builder builds an n-element array one element at a time using a
// push + finish interface.
//
// Most methods are fallible in some way: they return an error, a bool, or
// panic. The movebuilder package offers a misuse-resistant alternative
// whose operations cannot fail.
type Builder[T any] struct {
	buf *fixedbuf.Buffer[T]
}

// New returns an empty builder for an array of n elements.
// It panics if n is negative.
func New[T any](n int) *Builder[T] {
	return &Builder[T]{buf: fixedbuf.New[T](n)}
}

// IsFull reports whether every element is initialized; if so, the next
// Finish returns the array.
func (b *Builder[T]) IsFull() bool { return b.buf.IsFull() }

// IsEmpty reports whether no element is initialized.
func (b *Builder[T]) IsEmpty() bool { return b.buf.IsEmpty() }

// Len returns the number of initialized elements.
func (b *Builder[T]) Len() int { return b.buf.Len() }

// Cap returns the length of the array being built.
func (b *Builder[T]) Cap() int { return b.buf.Cap() }

func (b *Builder[T]) pushResult() PushResult {
	if b.buf.IsFull() {
		return Full
	}
	return NotFull
}

// PushUnchecked adds v without checking for room.
//
// The caller must guarantee the builder is not full.
func (b *Builder[T]) PushUnchecked(v T) PushResult {
	b.buf.PushUnchecked(v)
	return b.pushResult()
}

// TryPush adds v to the array.
//
// It returns OverflowError[T] holding v if the array is already full,
// otherwise a PushResult telling whether the array is now complete.
func (b *Builder[T]) TryPush(v T) (PushResult, error) {
	if !b.buf.TryPush(v) {
		return Full, OverflowError[T]{Value: v}
	}
	return b.pushResult(), nil
}

// Push adds v to the array.
//
// It panics with an OverflowError[T] if the array is already full.
func (b *Builder[T]) Push(v T) PushResult {
	res, err := b.TryPush(v)
	if err != nil {
		panic(err)
	}
	return res
}

// FinishUnchecked returns the array without checking that it is complete.
//
// The caller must guarantee the builder is full.
func (b *Builder[T]) FinishUnchecked() []T {
	return b.buf.FinishUnchecked()
}

// TryFinish returns the completed array. If some elements are still
// missing it returns (nil, false) and the builder stays usable.
func (b *Builder[T]) TryFinish() ([]T, bool) {
	return b.buf.TryFinish()
}

// Finish returns the completed array.
//
// It panics if the array is not complete.
func (b *Builder[T]) Finish() []T {
	out, ok := b.TryFinish()
	if !ok {
		panic(fmt.Errorf("%w (%s)", ErrIncomplete, b.progress()))
	}
	return out
}

// FinishedSlice returns the initialized part of the array. Elements may
// be changed in place.
func (b *Builder[T]) FinishedSlice() []T { return b.buf.Slice() }

// Extend pushes every element of seq. It panics on overflow.
func (b *Builder[T]) Extend(seq iter.Seq[T]) {
	for v := range seq {
		b.Push(v)
	}
}

// TryExtend pushes elements of seq until seq ends or the array is full.
//
// On overflow it stops pulling from seq and returns the OverflowError[T]
// carrying the rejected element.
func (b *Builder[T]) TryExtend(seq iter.Seq[T]) error {
	for v := range seq {
		if _, err := b.TryPush(v); err != nil {
			return err
		}
	}
	return nil
}

// Discard drops the elements written so far. The builder accepts nothing
// afterwards.
func (b *Builder[T]) Discard() { b.buf.Discard() }

// Clone returns an independent builder with a shallow copy of the
// elements written so far.
func (b *Builder[T]) Clone() *Builder[T] {
	return &Builder[T]{buf: b.buf.Clone()}
}

// String renders the builder for debugging, e.g.
//
//	Builder{array: [1 2], progress: 2 / 4}
func (b *Builder[T]) String() string {
	return fmt.Sprintf("Builder{array: %v, progress: %s}", b.FinishedSlice(), b.progress())
}

func (b *Builder[T]) progress() string {
	return fmt.Sprintf("%d / %d", b.Len(), b.Cap())
}
