// Package build constructs fixed-length arrays one element at a time.
//
// Every function here takes the array length n and a producer, calls the
// producer exactly once for each index 0..n-1 in order, and returns a
// slice with len == cap == n. The producer comes in three shapes, each with
// a fallible (Try*) and an infallible form:
//
//   - With / TryWith:             func() T
//   - WithIndex / TryWithIndex:   func(index int) T
//   - WithPrefix / TryWithPrefix: func(prefix []T) T
//
// TryWithPrefix is the primitive; the others are thin layers over it. A
// failing producer stops the construction at once: the caller gets an
// *IndexedError naming the failing index and wrapping the producer's error,
// and never sees a partial array.
//
// The prefix handed to a prefix producer is a view of the array being
// built, not a copy: the returned slice reuses the same storage. A producer
// that keeps prefix after it returns therefore holds an alias of the result,
// and writes through it show up in the caller's array. Copy the prefix
// (slices.Clone) if it has to outlive the call.
//
// Because producers run on the caller's goroutine, they may use ordinary
// control flow: return early from the enclosing function through an error,
// block on I/O, or check a context (see TryWithContext).
//
//	func read4(r *bufio.Reader) ([4]int, error) {
//		arr, err := build.TryWith(4, func() (int, error) {
//			line, err := r.ReadString('\n')
//			if err != nil && line == "" {
//				return 0, err
//			}
//			return strconv.Atoi(strings.TrimSpace(line))
//		})
//		if err != nil {
//			return [4]int{}, err
//		}
//		return [4]int(arr), nil
//	}
//
// Fixed-size Go arrays are obtained with a slice-to-array conversion as
// above; cmd/brownstone-gen generates such wrappers from a spec file.
//
// Further builders:
//
//   - FromIter / TryFromIter and FromSeq / TryFromSeq take the first n
//     elements of an Iterator or iter.Seq.
//   - Cloned / ClonedOf fill the array by cloning the previous element.
//
// The package logs aborted constructions at debug level through Logger,
// which is a no-op unless SetLogger is called.
package build
