// Package nibblemaptesting generates deterministic key and value fixtures
// for exercising nibblemap containers. Fixtures are derived from name-based
// UUIDs so that generated data is the same from run to run without seeding
// a process-global RNG.
package nibblemaptesting

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

type TestConfig struct {
	// Label namespaces the generated stream; two generators with the same
	// label produce identical sequences.
	Label string
}

// Generator yields a deterministic stream of pseudo-random fixtures.
type Generator struct {
	ns   uuid.UUID
	next uint64
}

func NewGenerator(cfg TestConfig) *Generator {
	return &Generator{
		ns: uuid.NewSHA1(uuid.NameSpaceOID, []byte(cfg.Label)),
	}
}

// draw returns the next 16 deterministic bytes of the stream.
func (g *Generator) draw() uuid.UUID {
	id := uuid.NewSHA1(g.ns, binary.BigEndian.AppendUint64(nil, g.next))
	g.next++
	return id
}

// Int64 returns the next pseudo-random key.
func (g *Generator) Int64() int64 {
	id := g.draw()
	return int64(binary.BigEndian.Uint64(id[:8]))
}

// Int64n returns the next pseudo-random key in [0, n). Small ranges force
// the key collisions that exercise idempotent insertion.
func (g *Generator) Int64n(n int64) int64 {
	id := g.draw()
	return int64(binary.BigEndian.Uint64(id[:8]) % uint64(n))
}

// Float64 returns the next pseudo-random finite float in [0, 1).
func (g *Generator) Float64() float64 {
	id := g.draw()
	return float64(binary.BigEndian.Uint64(id[:8])>>11) / (1 << 53)
}

// Value returns a short printable value string for key ordinal i.
func (g *Generator) Value(i int) string {
	return fmt.Sprintf("v%d-%s", i, g.draw().String()[:8])
}

// Int64Keys returns n distinct keys in generation order.
func (g *Generator) Int64Keys(n int) []int64 {
	seen := make(map[int64]bool, n)
	keys := make([]int64, 0, n)
	for len(keys) < n {
		k := g.Int64()
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}
