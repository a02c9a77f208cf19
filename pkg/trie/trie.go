// Package trie implements an ordered associative container keyed by
// null-terminated byte strings, backed by a PATRICIA-style binary radix
// index packed into fixed-capacity nodes linked into a forest.
package trie

import (
	"bytes"
	"fmt"
)

const defaultBranchCapacity = 255

// Trie is an ordered map from byte-string keys to values of type V. Keys
// are derived from stored values via keyOf rather than stored separately,
// so the same value type can be reused across tries keyed differently.
type Trie[V any] struct {
	root      *tree[V]
	keyOf     func(V) []byte
	branchCap int
	size      int
	gen       uint64
}

// Option configures a Trie at construction time.
type Option func(*config)

type config struct {
	branchCap int
}

// WithBranchCapacity overrides the maximum number of branches (and so
// leaves, branches+1) a single tree node may hold before it must split.
// n must be in [1,255]; without this option the default of 255 is in
// effect.
func WithBranchCapacity(n int) Option {
	return func(c *config) { c.branchCap = n }
}

// New creates an empty Trie. keyOf must return the same bytes for a value
// every time it is called, and must never return a slice containing an
// embedded zero byte.
func New[V any](keyOf func(V) []byte, opts ...Option) (*Trie[V], error) {
	cfg := config{branchCap: defaultBranchCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.branchCap < 1 || cfg.branchCap > 255 {
		return nil, fmt.Errorf("trie: new: branch capacity %d out of range [1,255]", cfg.branchCap)
	}
	return &Trie[V]{keyOf: keyOf, branchCap: cfg.branchCap}, nil
}

// Len returns the number of values currently stored.
func (tr *Trie[V]) Len() int { return tr.size }

// Clear discards every stored value, leaving the trie empty. It bumps the
// generation counter so any outstanding iterators are invalidated.
func (tr *Trie[V]) Clear() {
	tr.root = nil
	tr.size = 0
	tr.gen++
}

// Add inserts x under its projected key. It reports false, without error,
// if that key is already present; the existing value is left untouched.
func (tr *Trie[V]) Add(x V) (bool, error) {
	key := tr.keyOf(x)
	if err := validateKey(key); err != nil {
		return false, err
	}
	if _, found := tr.Get(key); found {
		return false, nil
	}
	if err := tr.addUnique(x); err != nil {
		return false, err
	}
	return true, nil
}

// Put inserts x under its projected key, unconditionally replacing any
// existing value there. It returns the ejected previous value (if any).
func (tr *Trie[V]) Put(x V) (eject V, hadPrevious bool, err error) {
	return tr.PolicyPut(x, func(existing, candidate V) bool { return true })
}

// PolicyPut inserts x under its projected key. If a value is already
// stored there, replace is called with (existing, candidate); the
// existing value is kept unless replace returns true, in which case it is
// ejected and x takes its place.
func (tr *Trie[V]) PolicyPut(x V, replace func(existing, candidate V) bool) (eject V, replaced bool, err error) {
	var zero V
	key := tr.keyOf(x)
	if err := validateKey(key); err != nil {
		return zero, false, err
	}

	loc, ok := tr.leafMatch(key)
	if ok {
		existing := loc.tree.leaves[loc.index].data
		if bytes.Equal(tr.keyOf(existing), key) {
			if !replace(existing, x) {
				return zero, false, nil
			}
			loc.tree.leaves[loc.index].data = x
			tr.gen++
			return existing, true, nil
		}
	}

	if err := tr.addUnique(x); err != nil {
		return zero, false, err
	}
	return zero, false, nil
}

// Remove deletes the value stored under key, reporting whether it was
// present.
func (tr *Trie[V]) Remove(key []byte) (V, bool, error) {
	return tr.remove(key)
}
