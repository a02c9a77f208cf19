package trie

import (
	"bytes"
	"fmt"
)

// pathStep records one branch visited while descending toward a leaf being
// removed, and whether the descent took its left side.
type pathStep struct {
	pos      int
	wentLeft bool
}

// locateParent re-descends t to leaf index li, returning the full path
// (for undoing left-counts), the position of the deepest branch P on that
// path, and the branch-index range of P's sibling subtree. sibIsBranch
// reports whether that sibling is itself a branch (non-empty range) or a
// lone twin leaf.
func (t *tree[V]) locateParent(li int) (path []pathStep, pPos, sibBr0, sibBr1 int, sibIsBranch bool) {
	br0, br1, lf := 0, t.branchCount, 0
	for br0 < br1 {
		cur := br0
		left := int(t.branches[cur].left)
		if li < lf+left+1 {
			path = append(path, pathStep{cur, true})
			sibBr0, sibBr1 = cur+1+left, br1
			br0, br1 = cur+1, cur+1+left
		} else {
			path = append(path, pathStep{cur, false})
			sibBr0, sibBr1 = cur+1, cur+1+left
			newBr0 := cur + 1 + left
			lf = lf + left + 1
			br0, br1 = newBr0, br1
		}
	}
	pPos = path[len(path)-1].pos
	sibIsBranch = sibBr1 > sibBr0
	return path, pPos, sibBr0, sibBr1, sibIsBranch
}

// collapseIfNeeded handles a tree that has dropped to branch_count == 0,
// meaning it holds exactly one leaf. If that leaf is a child link, the
// child replaces the (now-redundant) wrapper tree in sl. If it is a data
// leaf, the tree is left in place as a single-leaf tree, at the root or
// in a child slot alike.
func (tr *Trie[V]) collapseIfNeeded(sl slot[V], t *tree[V]) {
	if t.isChildAt(0) {
		sl.set(tr, t.leaves[0].child)
	}
}

// remove deletes the value stored under key, reporting whether it was
// present.
func (tr *Trie[V]) remove(key []byte) (V, bool, error) {
	var zero V
	loc, ok := tr.leafMatch(key)
	if !ok {
		return zero, false, nil
	}
	val := loc.tree.leaves[loc.index].data
	if !bytes.Equal(tr.keyOf(val), key) {
		return zero, false, nil
	}

	t := loc.tree
	li := loc.index

	if t.branchCount == 0 && !loc.slot.isRoot() {
		// A non-root single-leaf tree: remove the parent's link to it
		// instead, climbing past any further single-leaf wrappers.
		chain := tr.locateChain(key)
		lvl := len(chain) - 1
		for lvl > 0 && chain[lvl].tree.branchCount == 0 {
			lvl--
		}
		t, li, loc.slot = chain[lvl].tree, chain[lvl].index, chain[lvl].slot
	}

	if t.branchCount == 0 {
		// t is the root and the removed leaf is the only value reachable
		// from it, so the trie becomes idle.
		loc.slot.set(tr, nil)
		tr.size--
		tr.gen++
		return val, true, nil
	}

	path, pPos, sibBr0, _, sibIsBranch := t.locateParent(li)
	if sibIsBranch {
		sibling := &t.branches[sibBr0]
		newSkip := int(sibling.skip) + 1 + int(t.branches[pPos].skip)
		if newSkip > 255 {
			return zero, false, fmt.Errorf("trie: remove %q: %w", key, ErrSkipOverflow)
		}
		sibling.skip = uint8(newSkip)
	} else {
		twin := li - 1
		if path[len(path)-1].wentLeft {
			twin = li + 1
		}
		c := t.leaves[twin].child
		for t.isChildAt(twin) && c.branchCount == 0 && c.isChildAt(0) {
			c = c.leaves[0].child
		}
		if t.isChildAt(twin) && c.branchCount > 0 {
			newSkip := int(c.branches[0].skip) + 1 + int(t.branches[pPos].skip)
			if newSkip > 255 {
				return zero, false, fmt.Errorf("trie: remove %q: %w", key, ErrSkipOverflow)
			}
			c.branches[0].skip = uint8(newSkip)
		}
	}
	for _, step := range path[:len(path)-1] {
		if step.wentLeft {
			t.branches[step.pos].left--
		}
	}
	t.deleteAt(pPos, li)
	tr.size--

	if t.branchCount == 0 {
		tr.collapseIfNeeded(loc.slot, t)
	}
	tr.gen++
	return val, true, nil
}
