package nibblemap

import "sync"

// CellAllocator yields and releases storage for one value cell at a time.
// Get returns nil when storage cannot be obtained, in which case the
// in-flight insertion rolls back. Put is the release hook for erased and
// cleared cells and must leave the cell free of references the caller
// expects to be dropped.
type CellAllocator[V any] interface {
	Get() *V
	Put(*V)
}

// HeapAllocator allocates cells from the Go heap. Put zeroes the released
// cell so stored values stop pinning their referents.
type HeapAllocator[V any] struct{}

func (HeapAllocator[V]) Get() *V { return new(V) }

func (HeapAllocator[V]) Put(v *V) {
	var zero V
	*v = zero
}

// PoolAllocator recycles value cells through a sync.Pool. Useful when a
// map sees heavy insert/remove churn of a large value type.
type PoolAllocator[V any] struct {
	pool sync.Pool
}

func NewPoolAllocator[V any]() *PoolAllocator[V] {
	p := &PoolAllocator[V]{}
	p.pool.New = func() any { return new(V) }
	return p
}

func (p *PoolAllocator[V]) Get() *V { return p.pool.Get().(*V) }

func (p *PoolAllocator[V]) Put(v *V) {
	var zero V
	*v = zero
	p.pool.Put(v)
}
