package nibblemap

import "errors"

const (
	// fanout is the child-slot count of an interior node, one slot per
	// nibble value.
	fanout = 16

	// maxKeyBytes bounds the key width; the widest admissible kind is 8
	// bytes, giving maxNibbles trie levels.
	maxKeyBytes = 8
	maxNibbles  = 2 * maxKeyBytes
)

// Overflow marker values. The marker is stored in the byte following the
// key bytes and participates in cursor equality.
const (
	ovfNormal = 0x00 // cursor names a key inside the container range
	ovfPast   = 0x01 // past the last element (forward end)
	ovfBefore = 0xFF // before the first element (reverse end)
)

var (
	ErrKeyNotFound = errors.New("nibblemap: key not found")
	ErrAllocFailed = errors.New("nibblemap: cell allocator failed")
)
