package build

// Cloner is implemented by types that can copy themselves.
type Cloner[T any] interface {
	Clone() T
}

// Cloned builds an n-element array whose first element is seed and whose
// every later element is clone applied to the element just before it (not
// to seed).
//
// clone is called n-1 times; for n == 0 seed is unused.
func Cloned[T any](n int, seed T, clone func(T) T) []T {
	return WithPrefix(n, func(prefix []T) T {
		if len(prefix) == 0 {
			return seed
		}
		return clone(prefix[len(prefix)-1])
	})
}

// ClonedOf is Cloned using T's own Clone method.
func ClonedOf[T Cloner[T]](n int, seed T) []T {
	return Cloned(n, seed, func(v T) T { return v.Clone() })
}
