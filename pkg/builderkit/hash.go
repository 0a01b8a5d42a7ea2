package builderkit

import "hash/maphash"

var seed = maphash.MakeSeed()

// Hash accumulates the hash of a value property by property. Equal values
// produce equal hashes within one process; hashes are not stable across
// processes. The zero value is ready to use.
type Hash struct {
	sum uint64
}

// Mix folds x into h in order.
func (h *Hash) Mix(x uint64) {
	h.sum = h.sum*31 + x
}

func (h *Hash) Sum64() uint64 { return h.sum }

// Of hashes a comparable value consistently with ==.
func Of[T comparable](v T) uint64 {
	return maphash.Comparable(seed, v)
}

// OfPtr hashes the value p points to, or 0 for nil.
func OfPtr[T comparable](p *T) uint64 {
	if p == nil {
		return 0
	}
	return Of(*p)
}

// OfSlice hashes the elements of s in order.
func OfSlice[E comparable](s []E) uint64 {
	var h Hash
	for _, e := range s {
		h.Mix(Of(e))
	}
	return h.Sum64()
}

// OfSet hashes the elements of s independently of iteration order.
func OfSet[E comparable](s map[E]struct{}) uint64 {
	var sum uint64
	for e := range s {
		sum += Of(e)
	}
	return sum
}

// OfMap hashes the entries of m independently of iteration order.
func OfMap[K, V comparable](m map[K]V) uint64 {
	var sum uint64
	for k, v := range m {
		sum += Of(k)*31 + Of(v)
	}
	return sum
}

// OfMultimap hashes the entries of m independently of key order.
func OfMultimap[K, V comparable](m map[K][]V) uint64 {
	var sum uint64
	for k, values := range m {
		if len(values) > 0 {
			sum += Of(k)*31 + OfSlice(values)
		}
	}
	return sum
}

// OfLen is the hash contribution of a collection whose elements cannot be
// hashed: equal collections always have equal lengths.
func OfLen(n int) uint64 {
	return uint64(n)
}
