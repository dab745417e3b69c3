package nibblemap

import "github.com/forestrie/go-nibblemap/keyorder"

// Option configures a map at construction time.
type Option[K keyorder.Key, V any] func(*Map[K, V])

// WithOrder overrides the key order transform. The order must satisfy the
// keyorder.Order contract; the trie indexes keys by the transformed bit
// pattern, so changing the order of a non-empty map is not possible.
func WithOrder[K keyorder.Key, V any](o keyorder.Order[K]) Option[K, V] {
	return func(m *Map[K, V]) {
		m.order = o
	}
}

// WithAllocator overrides the value cell allocator.
func WithAllocator[K keyorder.Key, V any](a CellAllocator[V]) Option[K, V] {
	return func(m *Map[K, V]) {
		m.alloc = a
	}
}
