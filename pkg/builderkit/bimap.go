package builderkit

// BiMapStore is the storage of a bimap property in a builder. Keys and values
// are both unique: binding a value to a key drops any other binding of either.
type BiMapStore[K, V comparable] interface {
	Len() int
	Get(key K) (V, bool)
	GetKey(value V) (K, bool)
	// Range calls fn for every binding until fn returns false.
	Range(fn func(key K, value V) bool)
	// ForcePut binds value to key, removing any previous binding of the key and
	// of the value.
	ForcePut(key K, value V)
	RemoveKey(key K)
	RemoveValue(value V)
	Clear()
}

// BiMap is a BiMapStore kept in two ordinary maps.
type BiMap[K, V comparable] struct {
	forward map[K]V
	inverse map[V]K
}

var _ BiMapStore[string, int] = (*BiMap[string, int])(nil)

func NewBiMap[K, V comparable]() *BiMap[K, V] {
	return &BiMap[K, V]{forward: map[K]V{}, inverse: map[V]K{}}
}

func (m *BiMap[K, V]) Len() int { return len(m.forward) }

func (m *BiMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.forward[key]
	return v, ok
}

func (m *BiMap[K, V]) GetKey(value V) (K, bool) {
	k, ok := m.inverse[value]
	return k, ok
}

func (m *BiMap[K, V]) Range(fn func(key K, value V) bool) {
	for k, v := range m.forward {
		if !fn(k, v) {
			return
		}
	}
}

func (m *BiMap[K, V]) ForcePut(key K, value V) {
	if old, ok := m.forward[key]; ok {
		delete(m.inverse, old)
	}
	if oldKey, ok := m.inverse[value]; ok {
		delete(m.forward, oldKey)
	}
	m.forward[key] = value
	m.inverse[value] = key
}

func (m *BiMap[K, V]) RemoveKey(key K) {
	if v, ok := m.forward[key]; ok {
		delete(m.forward, key)
		delete(m.inverse, v)
	}
}

func (m *BiMap[K, V]) RemoveValue(value V) {
	if k, ok := m.inverse[value]; ok {
		delete(m.inverse, value)
		delete(m.forward, k)
	}
}

func (m *BiMap[K, V]) Clear() {
	for k := range m.forward {
		delete(m.forward, k)
	}
	for v := range m.inverse {
		delete(m.inverse, v)
	}
}

// Snapshot copies the bindings of s into an ordinary map.
func Snapshot[K, V comparable](s BiMapStore[K, V]) map[K]V {
	out := make(map[K]V, s.Len())
	s.Range(func(k K, v V) bool {
		out[k] = v
		return true
	})
	return out
}

// PutAll binds every entry of entries in s as one batch. When a value would end
// up bound to two keys, either because two entries share it or because s binds
// it to a key the batch leaves alone, PutAll returns a DuplicateValueError
// naming method and leaves s unchanged.
func PutAll[K, V comparable](s BiMapStore[K, V], method string, entries map[K]V) error {
	owners := make(map[V]K, len(entries))
	for k, v := range entries {
		if prev, ok := owners[v]; ok {
			return DuplicateValue(method, k, v, prev)
		}
		owners[v] = k
		bound, ok := s.GetKey(v)
		if !ok || bound == k {
			continue
		}
		if _, rebound := entries[bound]; !rebound {
			return DuplicateValue(method, k, v, bound)
		}
	}
	for k, v := range entries {
		s.ForcePut(k, v)
	}
	return nil
}
