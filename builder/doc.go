// Package builder provides a low-level builder for fixed-length arrays.
//
// A Builder is created for a fixed length n and filled with a push + finish
// interface:
//
//	b := builder.New[string](3)
//	b.Push("a")
//	b.Push("b")
//	if b.Push("c") == builder.Full {
//		arr := b.Finish() // []string{"a", "b", "c"}, len == cap == 3
//	}
//
// Checked and panicking forms come in pairs. The Try form reports the
// failure to the caller; the plain form panics with the same error value:
//
//   - TryPush returns OverflowError[T] carrying the rejected value back to
//     the caller; Push panics with it.
//   - TryFinish returns (nil, false) and leaves the builder untouched while
//     elements are missing; Finish panics with ErrIncomplete.
//
// The Unchecked forms skip those checks. They exist for the movebuilder
// package, whose handle can only exist while the array is not full and so
// discharges the precondition once for every push.
//
// Slices returned by this package never expose unwritten elements and
// cannot be appended into the builder's storage.
package builder
