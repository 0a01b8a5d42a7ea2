package builderkit

// CopySlice returns a copy of s that is never nil, so empty lists marshal as
// [] rather than null.
func CopySlice[E any](s []E) []E {
	return append(make([]E, 0, len(s)), s...)
}

// CopyMap returns a shallow copy of m, or nil when m is nil. Generated code
// targeting go1.21 and later uses maps.Clone instead.
func CopyMap[M ~map[K]V, K comparable, V any](m M) M {
	if m == nil {
		return nil
	}
	out := make(M, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// CopyMultimap copies m and each of its value slices.
func CopyMultimap[K comparable, V any](m map[K][]V) map[K][]V {
	if m == nil {
		return nil
	}
	out := make(map[K][]V, len(m))
	for k, values := range m {
		out[k] = append([]V(nil), values...)
	}
	return out
}

// EqualSlices reports whether a and b hold equal elements in the same order.
// Nil and empty slices are equal.
func EqualSlices[E comparable](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualMaps reports whether a and b hold the same entries. Nil and empty maps are equal.
func EqualMaps[K, V comparable](a, b map[K]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || v != w {
			return false
		}
	}
	return true
}

// EqualMultimaps reports whether a and b bind the same values to the same keys,
// in the same order per key. Keys bound to no values are ignored.
func EqualMultimaps[K, V comparable](a, b map[K][]V) bool {
	if countKeys(a) != countKeys(b) {
		return false
	}
	for k, values := range a {
		if len(values) > 0 && !EqualSlices(values, b[k]) {
			return false
		}
	}
	return true
}

func countKeys[K comparable, V any](m map[K][]V) int {
	n := 0
	for _, values := range m {
		if len(values) > 0 {
			n++
		}
	}
	return n
}

// EqualPtr reports whether a and b are both nil or point to equal values.
func EqualPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ClonePtr returns a pointer to a copy of *p, or nil.
func ClonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
