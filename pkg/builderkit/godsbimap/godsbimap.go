// Package godsbimap adapts github.com/emirpasic/gods hash bidimaps to
// builderkit.BiMapStore. Generated code uses it when the target module already
// depends on gods.
package godsbimap

import (
	"github.com/emirpasic/gods/maps/hashbidimap"

	"github.com/cmmoran/valuegen/pkg/builderkit"
)

// Map is a typed view of a hashbidimap.Map.
type Map[K, V comparable] struct {
	m *hashbidimap.Map
}

var _ builderkit.BiMapStore[string, int] = (*Map[string, int])(nil)

func New[K, V comparable]() *Map[K, V] {
	return &Map[K, V]{m: hashbidimap.New()}
}

// Wrap types an existing hashbidimap.Map. Every key must be a K and every value a V.
func Wrap[K, V comparable](m *hashbidimap.Map) *Map[K, V] {
	return &Map[K, V]{m: m}
}

// Unwrap returns the underlying gods map.
func (m *Map[K, V]) Unwrap() *hashbidimap.Map { return m.m }

func (m *Map[K, V]) Len() int { return m.m.Size() }

func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.m.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (m *Map[K, V]) GetKey(value V) (K, bool) {
	k, ok := m.m.GetKey(value)
	if !ok {
		var zero K
		return zero, false
	}
	return k.(K), true
}

func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, k := range m.m.Keys() {
		v, _ := m.m.Get(k)
		if !fn(k.(K), v.(V)) {
			return
		}
	}
}

// ForcePut relies on hashbidimap.Map.Put, which already drops the previous
// bindings of both the key and the value.
func (m *Map[K, V]) ForcePut(key K, value V) {
	m.m.Put(key, value)
}

func (m *Map[K, V]) RemoveKey(key K) {
	m.m.Remove(key)
}

func (m *Map[K, V]) RemoveValue(value V) {
	if k, ok := m.m.GetKey(value); ok {
		m.m.Remove(k)
	}
}

func (m *Map[K, V]) Clear() {
	m.m.Clear()
}
