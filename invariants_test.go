package nibblemap

import (
	"testing"
	"unsafe"

	"github.com/forestrie/go-nibblemap/keyorder"
	"github.com/stretchr/testify/require"
)

// checkTrieInvariants walks the whole trie and asserts the structural
// invariants every public mutation must preserve: no interior node with
// all sixteen slots absent, a leaf count matching Len, and an unmodified
// sentinel.
func checkTrieInvariants[K keyorder.Key, V any](t *testing.T, m *Map[K, V]) {
	t.Helper()

	for i := range emptyBlock {
		require.Equal(t, unsafe.Pointer(emptyBlock), emptyBlock[i], "sentinel slot %d was written", i)
	}

	leaves := countSubtreeLeaves(t, m.root, m.w)
	require.Equal(t, m.count, leaves, "element count does not match present leaves")
}

func countSubtreeLeaves(t *testing.T, p unsafe.Pointer, d int) int {
	t.Helper()
	if !present(p) {
		return 0
	}
	if d == 0 {
		return 1
	}
	blk := (*block)(p)
	n := 0
	for i := range blk {
		n += countSubtreeLeaves(t, blk[i], d-1)
	}
	require.NotZero(t, n, "interior node at depth %d is fully empty", d)
	return n
}

// countingAllocator counts cell traffic so tests can assert exactly one
// allocation per genuine insertion and one release per removal.
type countingAllocator[V any] struct {
	gets, puts int
	fail       bool
}

func (a *countingAllocator[V]) Get() *V {
	if a.fail {
		return nil
	}
	a.gets++
	return new(V)
}

func (a *countingAllocator[V]) Put(v *V) {
	a.puts++
	var zero V
	*v = zero
}
