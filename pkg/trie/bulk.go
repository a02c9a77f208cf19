package trie

import (
	"bytes"
	"fmt"
	"sort"
)

// NewFromSorted builds a Trie from values. values need not already be
// sorted or de-duplicated: a copy is stably sorted by projected key and
// adjacent duplicates are dropped (first occurrence wins), mirroring the
// qsort + unique step the original array-based loader performs before
// indexing.
//
// Unlike the original's single unbounded-node build, this builder does
// not partition the sorted run into nodes in one pass. It feeds the
// sorted, de-duplicated run through the same addUnique path used by
// Add/Put, one value at a time: O(n) calls into the insertion engine
// rather than a single-pass O(n) partition, reusing that engine instead
// of re-deriving its invariants for a bespoke bulk layout.
func NewFromSorted[V any](keyOf func(V) []byte, values []V, opts ...Option) (*Trie[V], error) {
	tr, err := New[V](keyOf, opts...)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return tr, nil
	}

	sorted := make([]V, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bytes.Compare(keyOf(sorted[i]), keyOf(sorted[j])) < 0
	})

	deduped := sorted[:1]
	for _, v := range sorted[1:] {
		if !bytes.Equal(keyOf(deduped[len(deduped)-1]), keyOf(v)) {
			deduped = append(deduped, v)
		}
	}

	for _, v := range deduped {
		if err := validateKey(keyOf(v)); err != nil {
			return nil, err
		}
		if err := tr.addUnique(v); err != nil {
			return nil, fmt.Errorf("trie: new from sorted: %w", err)
		}
	}
	return tr, nil
}
