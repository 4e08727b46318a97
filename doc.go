// Package brownstone builds fixed-length arrays one element at a time.
//
// This repository is a small stack of layers, each usable on its own:
//
//   - internal/fixedbuf: a bounded write buffer whose capacity N is fixed at
//     construction and never changes
//   - builder: a low-level builder with Try/Must pairs (TryPush/Push,
//     TryFinish/Finish) and an unchecked fast path
//   - movebuilder: a builder whose Push consumes the handle and returns either
//     the next handle or the completed array
//   - build: construction algorithms (WithPrefix, WithIndex, With, FromIter,
//     FromSeq, Cloned) in fallible and infallible forms
//
// Elements are produced in index order, exactly once each. A failing producer
// stops construction and the caller never sees a partially built array.
//
// Package brownstone See subpackages:
//   - build: start here
//   - cmd/brownstone-gen: generates functions returning [N]T from a spec file
//   - examples/*: runnable examples
package brownstone
