package nibblemap

/*

# nibblemap: an ordered map over a fan-out-16 digital trie

This package provides Map[K, V], an ordered associative container for
fixed-width numeric keys with constant-time point operations. The trie has
a fixed depth of one level per key nibble, so lookup and membership cost
exactly 2*sizeof(K) slot dereferences regardless of the element count.
Insertion and deletion walk that path more than once, so they cost a small
constant multiple of it, likewise independent of the element count.

It follows the same "functional primitives" style as go-merklelog/mmr:

- small, composable functions
- explicit nibble/byte layouts
- index arithmetic over pointer chasing where possible

## Core invariants

 1. An interior node is installed only while it has at least one
    non-sentinel descendant; after every public mutation no interior node
    is fully empty.
 2. The shared empty sentinel is never mutated. Every absent slot in every
    map references it by identity, so absence checks are one pointer
    comparison.
 3. The element count equals the number of leaf slots not referencing the
    sentinel.
 4. Slot addresses are stable under insertion of any key and under
    deletion of any other key. Cursors and value pointers therefore stay
    valid across those mutations.

## Traversal

A Cursor carries the nibble bytes of the key it names, an overflow marker
byte, and a stack of slot references from root to leaf. In-order movement
descends while the addressed subtree is present and otherwise steps the
current nibble with carry (borrow for reverse), so no parent pointers are
stored in nodes. Carry past the top nibble lands in the overflow byte,
which is also the last byte compared by cursor equality: two cursors are
equal iff their key bytes and overflow marker match byte for byte.

Past either end the cursor becomes a cached sentinel. Incrementing the
before-first sentinel steps onto the first element and decrementing the
past-last sentinel steps onto the last; moving a sentinel further outward
leaves it where it is. This keeps (first, end) loop semantics robust when
callers overstep.

## Concurrency

Map is a passive structure: no operation blocks or spawns. Concurrent
readers are safe only while no writer is active; concurrent mutation is
undefined.

*/
