package builderkit

// ListView is a live, read-only view of a list property held by a builder.
type ListView[E any] struct {
	s *[]E
}

func NewListView[E any](s *[]E) ListView[E] { return ListView[E]{s: s} }

func (v ListView[E]) Len() int { return len(*v.s) }

// At returns the i'th element. It panics when i is out of range.
func (v ListView[E]) At(i int) E { return (*v.s)[i] }

// Range calls fn for every element in order until fn returns false.
func (v ListView[E]) Range(fn func(i int, e E) bool) {
	for i, e := range *v.s {
		if !fn(i, e) {
			return
		}
	}
}

// Slice returns a copy of the current elements.
func (v ListView[E]) Slice() []E {
	return append([]E(nil), *v.s...)
}

// SetView is a live, read-only view of a set property held by a builder.
type SetView[E comparable] struct {
	m *map[E]struct{}
}

func NewSetView[E comparable](m *map[E]struct{}) SetView[E] { return SetView[E]{m: m} }

func (v SetView[E]) Len() int { return len(*v.m) }

func (v SetView[E]) Contains(e E) bool {
	_, ok := (*v.m)[e]
	return ok
}

// Range calls fn for every element, in no particular order, until fn returns false.
func (v SetView[E]) Range(fn func(e E) bool) {
	for e := range *v.m {
		if !fn(e) {
			return
		}
	}
}

// Set returns a copy of the current elements.
func (v SetView[E]) Set() map[E]struct{} {
	return CopyMap(*v.m)
}

// MapView is a live, read-only view of a map property held by a builder.
type MapView[K comparable, V any] struct {
	m *map[K]V
}

func NewMapView[K comparable, V any](m *map[K]V) MapView[K, V] { return MapView[K, V]{m: m} }

func (v MapView[K, V]) Len() int { return len(*v.m) }

func (v MapView[K, V]) Get(key K) (V, bool) {
	value, ok := (*v.m)[key]
	return value, ok
}

// Range calls fn for every entry, in no particular order, until fn returns false.
func (v MapView[K, V]) Range(fn func(key K, value V) bool) {
	for k, value := range *v.m {
		if !fn(k, value) {
			return
		}
	}
}

// Map returns a copy of the current entries.
func (v MapView[K, V]) Map() map[K]V {
	return CopyMap(*v.m)
}

// MultimapView is a live, read-only view of a multimap property held by a builder.
type MultimapView[K comparable, V any] struct {
	m *map[K][]V
}

func NewMultimapView[K comparable, V any](m *map[K][]V) MultimapView[K, V] {
	return MultimapView[K, V]{m: m}
}

// Len returns the number of key-value pairs.
func (v MultimapView[K, V]) Len() int {
	n := 0
	for _, values := range *v.m {
		n += len(values)
	}
	return n
}

// Keys returns the number of distinct keys.
func (v MultimapView[K, V]) Keys() int { return len(*v.m) }

// Get returns a copy of the values bound to key, in insertion order.
func (v MultimapView[K, V]) Get(key K) []V {
	return append([]V(nil), (*v.m)[key]...)
}

// Range calls fn for every pair until fn returns false. Keys come in no
// particular order; the values of one key come in insertion order.
func (v MultimapView[K, V]) Range(fn func(key K, value V) bool) {
	for k, values := range *v.m {
		for _, value := range values {
			if !fn(k, value) {
				return
			}
		}
	}
}

// Map returns a deep copy of the current entries.
func (v MultimapView[K, V]) Map() map[K][]V {
	return CopyMultimap(*v.m)
}

// BiMapView is a live, read-only view of a bimap property held by a builder.
type BiMapView[K, V comparable] struct {
	s BiMapStore[K, V]
}

func NewBiMapView[K, V comparable](s BiMapStore[K, V]) BiMapView[K, V] {
	return BiMapView[K, V]{s: s}
}

func (v BiMapView[K, V]) Len() int { return v.s.Len() }

func (v BiMapView[K, V]) Get(key K) (V, bool) { return v.s.Get(key) }

func (v BiMapView[K, V]) GetKey(value V) (K, bool) { return v.s.GetKey(value) }

// Range calls fn for every binding, in no particular order, until fn returns false.
func (v BiMapView[K, V]) Range(fn func(key K, value V) bool) { v.s.Range(fn) }

// Map returns a copy of the current bindings.
func (v BiMapView[K, V]) Map() map[K]V { return Snapshot(v.s) }
