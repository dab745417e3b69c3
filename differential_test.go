package nibblemap

import (
	"testing"

	"github.com/google/btree"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-nibblemap/nibblemaptesting"
)

type refItem struct {
	k int64
	v int
}

func refLess(a, b refItem) bool { return a.k < b.k }

// TestDifferentialAgainstBTree mirrors a random operation stream into a
// b-tree oracle and checks membership, ordering, bounds and size after
// every batch.
func TestDifferentialAgainstBTree(t *testing.T) {
	g := nibblemaptesting.NewGenerator(nibblemaptesting.TestConfig{Label: "differential"})

	m := New[int64, int]()
	ref := btree.NewG(8, refLess)

	const domain = 700 // small enough to force collisions and re-deletes

	checkAgainstRef := func() {
		t.Helper()
		require.Equal(t, ref.Len(), m.Len())

		var want []refItem
		ref.Ascend(func(it refItem) bool {
			want = append(want, it)
			return true
		})
		var got []refItem
		for k, v := range m.All() {
			got = append(got, refItem{k, v})
		}
		require.Equal(t, want, got)
	}

	for step := range 3000 {
		k := g.Int64n(domain)
		switch step % 4 {
		case 0, 1:
			_, refHad := ref.ReplaceOrInsert(refItem{k, step})
			_, inserted := m.Insert(k, step)
			require.Equal(t, !refHad, inserted, "insert disagreement at key %d", k)
			if refHad {
				// The map keeps the first value; restore it in the oracle.
				old, _ := m.Get(k)
				ref.ReplaceOrInsert(refItem{k, old})
			}
		case 2:
			_, refHad := ref.Delete(refItem{k: k})
			require.Equal(t, refHad, m.Delete(k), "delete disagreement at key %d", k)
		case 3:
			_, refHas := ref.Get(refItem{k: k})
			require.Equal(t, refHas, m.Contains(k), "membership disagreement at key %d", k)

			// Compare lower bounds.
			var refLB *refItem
			ref.AscendGreaterOrEqual(refItem{k: k}, func(it refItem) bool {
				refLB = &it
				return false
			})
			lb := m.LowerBound(k)
			if refLB == nil {
				require.True(t, lb.Equal(m.End()), "lower bound of %d should be end", k)
			} else {
				require.True(t, lb.Ok())
				require.Equal(t, refLB.k, lb.Key(), "lower bound disagreement at key %d", k)
			}
		}

		if step%250 == 0 {
			checkAgainstRef()
			checkTrieInvariants(t, m)
		}
	}

	checkAgainstRef()
	checkTrieInvariants(t, m)
}

// TestDifferentialWideKeys repeats the mirror over the full key range so
// deep interior spines are created and torn down.
func TestDifferentialWideKeys(t *testing.T) {
	g := nibblemaptesting.NewGenerator(nibblemaptesting.TestConfig{Label: "wide"})

	m := New[int64, int]()
	ref := btree.NewG(8, refLess)

	keys := g.Int64Keys(800)
	for i, k := range keys {
		m.Insert(k, i)
		ref.ReplaceOrInsert(refItem{k, i})
	}

	// Remove every third key, then verify the survivors in both orders.
	for i := 0; i < len(keys); i += 3 {
		m.Delete(keys[i])
		ref.Delete(refItem{k: keys[i]})
	}
	require.Equal(t, ref.Len(), m.Len())
	checkTrieInvariants(t, m)

	var want []refItem
	ref.Ascend(func(it refItem) bool { want = append(want, it); return true })
	var got []refItem
	for k, v := range m.All() {
		got = append(got, refItem{k, v})
	}
	require.Equal(t, want, got)

	var wantDesc []int64
	ref.Descend(func(it refItem) bool { wantDesc = append(wantDesc, it.k); return true })
	var gotDesc []int64
	for k := range m.Backward() {
		gotDesc = append(gotDesc, k)
	}
	require.Equal(t, wantDesc, gotDesc)
}
