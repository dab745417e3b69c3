package nibblemap

import (
	"fmt"
	"strings"
)

// debug utilities

// String renders the elements in ascending key order. Intended for tests
// and small maps; it walks the whole container.
func (m *Map[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for c := m.First(); !c.Equal(m.endC); c.Next() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "%v:%v", c.Key(), *c.Value())
	}
	sb.WriteByte('}')
	return sb.String()
}

// String renders the cursor's key bytes, overflow marker and depth.
func (c Cursor[K, V]) String() string {
	return cursorString(c.kb[:c.m.kw+1], c.depth)
}

func cursorString(kb []byte, depth int) string {
	var sb strings.Builder
	for i := len(kb) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%02x", kb[i])
		if i == len(kb)-1 {
			sb.WriteByte('|')
		}
	}
	fmt.Fprintf(&sb, "@%d", depth)
	return sb.String()
}
