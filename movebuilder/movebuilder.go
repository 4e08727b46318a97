// Package movebuilder provides a misuse-resistant array builder.
//
// A Builder handle exists only while the array it builds is incomplete.
// Every Push consumes the handle and returns a Step: either the finished
// array or a new handle for the next element. Because Push never hands a
// builder back together with a complete array, no caller can hold a
// builder whose array is already full, and pushes never fail.
//
// Go cannot move a value out of a variable, so consumption is enforced at
// run time: any use of a handle after it was passed to Push or Discard
// panics with ErrStaleBuilder.
//
//	step := movebuilder.Start[int](3)
//	for {
//		b, ok := step.NotFull()
//		if !ok {
//			break
//		}
//		step = b.Push(b.Len() * 10)
//	}
//	arr, _ := step.Full() // []int{0, 10, 20}
package movebuilder

import (
	"errors"
	"fmt"

	"github.com/sghaida/brownstone/builder"
)

// ErrStaleBuilder is the panic value when a consumed Builder is used.
var ErrStaleBuilder = errors.New("movebuilder: builder used after push or discard")

// ErrNegativeLength is the panic cause of Start for a negative length.
var ErrNegativeLength = errors.New("movebuilder: negative array length")

// state is shared by every handle of one construction. gen identifies the
// only live handle.
type state[T any] struct {
	b   *builder.Builder[T]
	gen uint64
}

// Builder is a handle to an incomplete array.
//
// The zero Builder is not usable; obtain one from Start.
type Builder[T any] struct {
	st  *state[T]
	gen uint64
}

// Step is the result of Start and Push: exactly one of Full and NotFull
// reports ok.
type Step[T any] struct {
	array []T
	next  Builder[T]
	full  bool
}

// Full returns the completed array.
func (s Step[T]) Full() ([]T, bool) {
	if !s.full {
		return nil, false
	}
	return s.array, true
}

// NotFull returns the builder for the remaining elements.
func (s Step[T]) NotFull() (Builder[T], bool) {
	if s.full || s.next.st == nil {
		return Builder[T]{}, false
	}
	return s.next, true
}

// IsFull reports whether the step carries a completed array.
func (s Step[T]) IsFull() bool { return s.full }

// Start begins building an array of n elements. For n == 0 it returns the
// empty array immediately and no builder is created.
func Start[T any](n int) Step[T] {
	if n < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativeLength, n))
	}
	b := builder.New[T](n)
	if arr, ok := b.TryFinish(); ok {
		return Step[T]{array: arr, full: true}
	}
	return Step[T]{next: Builder[T]{st: &state[T]{b: b}}}
}

func (b Builder[T]) live() *builder.Builder[T] {
	if b.st == nil || b.st.gen != b.gen {
		panic(ErrStaleBuilder)
	}
	return b.st.b
}

// Len returns the number of initialized elements.
func (b Builder[T]) Len() int { return b.live().Len() }

// Cap returns the length of the array being built.
func (b Builder[T]) Cap() int { return b.live().Cap() }

// IsEmpty reports whether no element is initialized.
func (b Builder[T]) IsEmpty() bool { return b.live().IsEmpty() }

// FinishedSlice returns the initialized part of the array. Elements may
// be changed in place until the next Push.
func (b Builder[T]) FinishedSlice() []T { return b.live().FinishedSlice() }

// Push appends v and consumes b. If v completes the array the Step holds
// the array, otherwise it holds the builder for the next element.
func (b Builder[T]) Push(v T) Step[T] {
	lb := b.live()
	b.st.gen++
	// A live handle means the array is not full, so the unchecked
	// primitives' preconditions hold.
	if lb.PushUnchecked(v) == builder.Full {
		return Step[T]{array: lb.FinishUnchecked(), full: true}
	}
	return Step[T]{next: Builder[T]{st: b.st, gen: b.st.gen}}
}

// Discard consumes b and drops the elements written so far.
func (b Builder[T]) Discard() {
	lb := b.live()
	b.st.gen++
	lb.Discard()
}

// Clone returns an independent builder holding a shallow copy of the
// elements written so far. b stays live.
func (b Builder[T]) Clone() Builder[T] {
	return Builder[T]{st: &state[T]{b: b.live().Clone()}}
}

// String renders the builder for debugging.
func (b Builder[T]) String() string {
	if b.st == nil || b.st.gen != b.gen {
		return "movebuilder.Builder{stale}"
	}
	return "movebuilder." + b.st.b.String()
}
