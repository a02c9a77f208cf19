package trie

import "errors"

// Sentinel errors returned (wrapped with fmt.Errorf("...: %w", err)) by the
// operations that can fail per the error handling design: allocation, the
// 255-bit skip ceiling on insertion, and the same ceiling on removal's
// branch merge.
var (
	// ErrAllocation is returned when a tree node could not be allocated.
	// Go's allocator does not expose a recoverable out-of-memory condition,
	// so this is not expected to be observed in practice; it exists so the
	// public surface matches the documented error kinds.
	ErrAllocation = errors.New("trie: tree allocation failed")

	// ErrBitsExhausted is returned by Add/Put/PolicyPut when two distinct
	// keys agree on more than 255 bits beyond the last index-governed bit,
	// so no single skip field can represent the gap.
	ErrBitsExhausted = errors.New("trie: keys agree on too many bits (skip field exhausted)")

	// ErrSkipOverflow is returned by Remove when merging a collapsed
	// branch's skip into its surviving sibling would exceed 255.
	ErrSkipOverflow = errors.New("trie: removal would overflow skip field")

	// ErrEmbeddedZero is returned when a projected key contains a zero
	// byte before its end; keys are zero-terminated byte strings and must
	// not embed the terminator.
	ErrEmbeddedZero = errors.New("trie: key contains an embedded zero byte")

	// ErrIteratorInvalidated is returned by Iterator.Next once the trie has
	// been structurally mutated since the iterator was created.
	ErrIteratorInvalidated = errors.New("trie: iterator invalidated by mutation")
)
