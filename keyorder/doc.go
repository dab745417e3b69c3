package keyorder

/*

# Key order transforms for nibblemap

A nibblemap container walks its trie in the unsigned-lexicographic order of
the key's nibble string. For unsigned integers that order already matches
the numeric order; for signed integers and IEEE-754 floats it does not. An
Order bridges the gap: Apply maps a key onto a representation whose raw bit
pattern sorts unsigned-lexicographically in the caller's desired order, and
Restore maps it back.

## Contract

For every order O and all representable a, b:

 1. O.Restore(O.Apply(x)) == x
 2. a sorts before b in the desired order iff
    Bits(O.Apply(a)) < Bits(O.Apply(b))

Both functions are pure and total. Callers may supply their own Order; the
provided implementations cover the numeric kinds:

  - Identity: unsigned integers (no transformation)
  - SignFlip: two's-complement integers (XOR of the sign bit)
  - FloatFlip: IEEE-754 floats (sign flip, with the remaining bits inverted
    for negative values so that the negative range sorts ascending)

Default selects among them by probing K's arithmetic, so named types
derived from the builtin kinds resolve without reflection.

## Floats

FloatFlip yields the usual total order over the float bit space:

	-NaN < -Inf < -1.5 < -0.0 < +0.0 < 1.5 < +Inf < +NaN

NaN payloads are admitted and ordered by their transformed bit pattern.

*/
