// Package fixedbuf implements the bounded write-buffer that backs every
// builder in this module.
//
// A Buffer has a capacity fixed at creation and holds its initialized
// elements contiguously from index 0. The tail of the backing array past
// Len() is never read, copied or handed out: every slice a Buffer returns
// is capped at its length, so callers cannot append into it.
//
// Building with the brownstone_debug tag turns on precondition checks for
// the Unchecked operations.
package fixedbuf

import "strconv"

// Buffer is a capacity-bounded, append-only store of T.
//
// Once finished or discarded a Buffer is sealed: it reports IsFull, holds
// no elements and accepts no further writes.
type Buffer[T any] struct {
	data   []T // initialized prefix; cap(data) == n until sealed
	n      int
	sealed bool
}

// New returns an empty Buffer with capacity n. It panics if n is negative.
func New[T any](n int) *Buffer[T] {
	if n < 0 {
		panic("fixedbuf: negative capacity " + strconv.Itoa(n))
	}
	return &Buffer[T]{data: make([]T, 0, n), n: n}
}

// Len returns the number of initialized elements.
func (b *Buffer[T]) Len() int { return len(b.data) }

// Cap returns the capacity the buffer was created with.
func (b *Buffer[T]) Cap() int { return b.n }

// IsEmpty reports whether no element has been written.
func (b *Buffer[T]) IsEmpty() bool { return len(b.data) == 0 }

// IsFull reports whether the buffer accepts no more elements.
func (b *Buffer[T]) IsFull() bool { return b.sealed || len(b.data) == b.n }

// Sealed reports whether the buffer was finished or discarded.
func (b *Buffer[T]) Sealed() bool { return b.sealed }

// PushUnchecked appends v. The caller guarantees !IsFull().
func (b *Buffer[T]) PushUnchecked(v T) {
	if debugChecks && b.IsFull() {
		panic("fixedbuf: PushUnchecked on a full buffer (" + b.progress() + ")")
	}
	i := len(b.data)
	b.data = b.data[:i+1]
	b.data[i] = v
}

// TryPush appends v and reports true, or reports false and leaves the
// buffer untouched when it is full.
func (b *Buffer[T]) TryPush(v T) bool {
	if b.IsFull() {
		return false
	}
	b.PushUnchecked(v)
	return true
}

// TryFinish returns the completed sequence and seals the buffer when every
// slot is written. Otherwise it returns (nil, false) and changes nothing.
func (b *Buffer[T]) TryFinish() ([]T, bool) {
	if b.sealed || len(b.data) != b.n {
		return nil, false
	}
	return b.FinishUnchecked(), true
}

// FinishUnchecked returns the completed sequence and seals the buffer.
// The caller guarantees the buffer is full and not yet sealed.
func (b *Buffer[T]) FinishUnchecked() []T {
	if debugChecks && (b.sealed || len(b.data) != b.n) {
		panic("fixedbuf: FinishUnchecked on an incomplete buffer (" + b.progress() + ")")
	}
	out := b.data[:b.n:b.n]
	b.data = nil
	b.sealed = true
	return out
}

// Slice returns the initialized prefix in order. Elements may be modified
// in place; the slice cannot grow into unwritten slots.
func (b *Buffer[T]) Slice() []T {
	n := len(b.data)
	return b.data[:n:n]
}

// Discard zeroes the written elements and seals the buffer.
func (b *Buffer[T]) Discard() {
	clear(b.data)
	b.data = nil
	b.sealed = true
}

// Clone returns a buffer with the same capacity holding a shallow copy of
// the initialized prefix.
func (b *Buffer[T]) Clone() *Buffer[T] {
	c := &Buffer[T]{n: b.n, sealed: b.sealed}
	if !b.sealed {
		c.data = make([]T, len(b.data), b.n)
		copy(c.data, b.data)
	}
	return c
}

func (b *Buffer[T]) progress() string {
	return strconv.Itoa(len(b.data)) + " / " + strconv.Itoa(b.n)
}
