package build

import (
	"context"

	"go.uber.org/zap"

	"github.com/sghaida/brownstone/movebuilder"
)

type (
	// PrefixFunc produces the next element from the elements built so far.
	PrefixFunc[T any] func(prefix []T) T

	// TryPrefixFunc is a PrefixFunc that may fail.
	TryPrefixFunc[T any] func(prefix []T) (T, error)

	// IndexFunc produces the element at index.
	IndexFunc[T any] func(index int) T

	// TryIndexFunc is an IndexFunc that may fail.
	TryIndexFunc[T any] func(index int) (T, error)
)

// TryWithPrefix builds an n-element array by calling f once per element,
// in index order, with the elements built so far.
//
// For call i the prefix has length i. f may modify prefix elements in
// place; the prefix must not be retained after f returns.
//
// If f fails, TryWithPrefix stops immediately, drops the elements built so
// far and returns an *IndexedError holding the failing index and f's error.
// No partial array is returned.
func TryWithPrefix[T any](n int, f TryPrefixFunc[T]) ([]T, error) {
	step := movebuilder.Start[T](n)
	for {
		b, ok := step.NotFull()
		if !ok {
			arr, _ := step.Full()
			return arr, nil
		}

		v, err := f(b.FinishedSlice())
		if err != nil {
			index := b.Len()
			b.Discard()
			Logger().Debug("array construction aborted",
				zap.Int("index", index),
				zap.Int("length", n),
				zap.Error(err),
			)
			return nil, &IndexedError{Index: index, Err: err}
		}
		step = b.Push(v)
	}
}

// WithPrefix is the infallible form of TryWithPrefix.
//
// Example (Fibonacci):
//
//	fib := build.WithPrefix(8, func(prefix []int) int {
//		switch len(prefix) {
//		case 0:
//			return 0
//		case 1:
//			return 1
//		}
//		return prefix[len(prefix)-2] + prefix[len(prefix)-1]
//	})
//	// [0 1 1 2 3 5 8 13]
func WithPrefix[T any](n int, f PrefixFunc[T]) []T {
	return mustComplete(TryWithPrefix(n, func(prefix []T) (T, error) {
		return f(prefix), nil
	}))
}

// TryWithIndex builds an n-element array by calling f with each index in
// order. Failures are reported as in TryWithPrefix.
func TryWithIndex[T any](n int, f TryIndexFunc[T]) ([]T, error) {
	return TryWithPrefix(n, func(prefix []T) (T, error) {
		return f(len(prefix))
	})
}

// WithIndex is the infallible form of TryWithIndex.
func WithIndex[T any](n int, f IndexFunc[T]) []T {
	return mustComplete(TryWithIndex(n, func(index int) (T, error) {
		return f(index), nil
	}))
}

// TryWith builds an n-element array by calling f exactly n times.
// Failures are reported as in TryWithPrefix.
func TryWith[T any](n int, f func() (T, error)) ([]T, error) {
	return TryWithPrefix(n, func([]T) (T, error) {
		return f()
	})
}

// With is the infallible form of TryWith.
func With[T any](n int, f func() T) []T {
	return mustComplete(TryWith(n, func() (T, error) {
		return f(), nil
	}))
}

// TryWithContext is TryWithIndex with cancellation: ctx is checked before
// each call to f, and a done context stops the construction with an
// *IndexedError wrapping ctx.Err() at the index about to be produced.
func TryWithContext[T any](ctx context.Context, n int, f func(ctx context.Context, index int) (T, error)) ([]T, error) {
	return TryWithIndex(n, func(index int) (T, error) {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		return f(ctx, index)
	})
}
