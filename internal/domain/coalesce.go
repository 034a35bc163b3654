package domain

// Coalesce returns the first non-zero value, used by update commands where an
// empty flag keeps the stored value.
func Coalesce[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}
