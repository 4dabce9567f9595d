// Package collection holds the immutable slice updates the stores are built
// on. Every helper returns a fresh slice and leaves its input untouched.
package collection

// Prepend returns a new slice with v in front of xs.
func Prepend[T any](xs []T, v T) []T {
	out := make([]T, 0, len(xs)+1)
	out = append(out, v)
	return append(out, xs...)
}

// UpdateWhere returns a copy of xs where every element matching pred is
// replaced by fn(element). Non-matching elements keep their position.
// The second result reports whether anything matched.
func UpdateWhere[T any](xs []T, pred func(T) bool, fn func(T) T) ([]T, bool) {
	out := make([]T, len(xs))
	hit := false
	for i, x := range xs {
		if pred(x) {
			out[i] = fn(x)
			hit = true
			continue
		}
		out[i] = x
	}
	return out, hit
}

// RemoveWhere returns a copy of xs without the elements matching pred, and
// whether anything was removed.
func RemoveWhere[T any](xs []T, pred func(T) bool) ([]T, bool) {
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if !pred(x) {
			out = append(out, x)
		}
	}
	return out, len(out) != len(xs)
}

// Find returns the first element matching pred.
func Find[T any](xs []T, pred func(T) bool) (T, bool) {
	for _, x := range xs {
		if pred(x) {
			return x, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns a copy of xs holding only the elements matching pred.
func Filter[T any](xs []T, pred func(T) bool) []T {
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if pred(x) {
			out = append(out, x)
		}
	}
	return out
}

// Clone returns a shallow copy of xs that is never nil.
func Clone[T any](xs []T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	return out
}

// Reversed returns a copy of xs in reverse order.
func Reversed[T any](xs []T) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}
