package nibblemap

import "iter"

// All yields every element in ascending key order. Values are yielded by
// copy; use cursors for in-place mutation. Inserting during iteration is
// safe; removing any key other than the current one is safe.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for c := m.First(); !c.Equal(m.endC); c.Next() {
			if !yield(c.Key(), *c.Value()) {
				return
			}
		}
	}
}

// Backward yields every element in descending key order.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for c := m.Last(); !c.Equal(m.rendC); c.Next() {
			if !yield(c.Key(), *c.Value()) {
				return
			}
		}
	}
}

// Keys yields every key in ascending order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for c := m.First(); !c.Equal(m.endC); c.Next() {
			if !yield(c.Key()) {
				return
			}
		}
	}
}
