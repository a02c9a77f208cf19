package trie

import "bytes"

// bitAt returns the bit at absolute position bit within key, MSB-first
// within each byte. Keys are conceptually zero-terminated byte strings: a
// byte index past len(key) reads as the implicit terminator (and, beyond
// that, as an infinite run of zero bits), so ok reports whether bit lies
// at or before that terminator. Once ok is false, the key has genuinely
// ended and no further bits of it may be consulted.
func bitAt(key []byte, bit int) (value int, ok bool) {
	byteIdx := bit / 8
	if byteIdx > len(key) {
		return 0, false
	}
	var b byte
	if byteIdx < len(key) {
		b = key[byteIdx]
	}
	shift := uint(7 - bit%8)
	return int((b >> shift) & 1), true
}

// bitAtInf reads the bit at absolute position bit within key, extending
// key with infinite zero bits past its end. Used when comparing two
// concrete, already-known keys (insertion's differing-bit search), where
// there is no notion of "key too short to decide" — only of where they
// first disagree.
func bitAtInf(key []byte, bit int) int {
	byteIdx := bit / 8
	if byteIdx >= len(key) {
		return 0
	}
	shift := uint(7 - bit%8)
	return int((key[byteIdx] >> shift) & 1)
}

// leafLoc pinpoints a single leaf slot reached during a descent: the
// containing tree, its slot (for replacement), the leaf index within it,
// and the absolute bit position at which that tree began.
type leafLoc[V any] struct {
	tree  *tree[V]
	slot  slot[V]
	index int
	bit0  int
}

// leafMatch implements the shared index-descent used by lookup, insertion,
// and removal: it descends the forest from root following key's bits, returning
// the slot of the leaf the index selects — without verifying that the
// leaf's actual key agrees with key outside the bits the index examined.
// It fails (ok=false) if key ends before a decision bit it needs to test.
func (tr *Trie[V]) leafMatch(key []byte) (loc leafLoc[V], ok bool) {
	if tr.root == nil {
		return leafLoc[V]{}, false
	}
	cur := tr.root
	curSlot := rootSlot[V]()
	bit0 := 0
	lf := 0
	for {
		br0, br1 := 0, cur.branchCount
		for br0 < br1 {
			br := cur.branches[br0]
			decisionBit := bit0 + int(br.skip)
			bval, bok := bitAt(key, decisionBit)
			if !bok {
				return leafLoc[V]{}, false
			}
			if bval == 0 {
				br1 = br0 + 1 + int(br.left)
				br0 = br0 + 1
			} else {
				lf = lf + int(br.left) + 1
				br0 = br0 + int(br.left) + 1
			}
			bit0 = decisionBit + 1
		}
		if cur.isChildAt(lf) {
			child := cur.leaves[lf].child
			curSlot = childSlot[V](cur, lf)
			cur = child
			lf = 0
			continue
		}
		return leafLoc[V]{tree: cur, slot: curSlot, index: lf, bit0: bit0}, true
	}
}

// Get returns the value stored under key, if any. It performs the final
// byte-for-byte key comparison that leafMatch omits.
func (tr *Trie[V]) Get(key []byte) (V, bool) {
	var zero V
	loc, ok := tr.leafMatch(key)
	if !ok {
		return zero, false
	}
	val := loc.tree.leaves[loc.index].data
	if !bytes.Equal(tr.keyOf(val), key) {
		return zero, false
	}
	return val, true
}

// Match behaves like Get but skips the final byte comparison, returning
// whichever candidate the index alone selects (the classic PATRICIA
// "index match" — may be wrong when key was never inserted).
func (tr *Trie[V]) Match(key []byte) (V, bool) {
	var zero V
	loc, ok := tr.leafMatch(key)
	if !ok {
		return zero, false
	}
	return loc.tree.leaves[loc.index].data, true
}
