package trie

import "fmt"

// ancestorInfo remembers the deepest tree on a descent path that is not
// full, so Stage 4 knows where to promote a split's root branch.
type ancestorInfo[V any] struct {
	slot slot[V]
	tree *tree[V]
	bit0 int
}

// diffResult is what Stage 2 (findDiffBit) hands to the caller: the tree
// in which the new key must be inserted, the bit position at which it
// begins, the first bit at which key(x) differs from a representative
// existing key, and (if the target tree is full) the ancestor/fullChild
// bookkeeping Stage 4 needs.
type diffResult[V any] struct {
	targetSlot    slot[V]
	target        *tree[V]
	targetBit0    int
	diffBit       int
	ancestor      *ancestorInfo[V]
	fullChild     *tree[V]
	fullChildSlot slot[V]
}

func validateKey(key []byte) error {
	for _, b := range key {
		if b == 0 {
			return fmt.Errorf("trie: validate key: %w", ErrEmbeddedZero)
		}
	}
	return nil
}

// findDiffBit walks the whole forest from the root comparing key(x) to a
// representative sample bit by bit, tracking the deepest unfull ancestor
// along the way so a later split knows where to promote into.
func (tr *Trie[V]) findDiffBit(xKey []byte) (diffResult[V], error) {
	cur := tr.root
	curSlot := rootSlot[V]()
	bit0 := 0

	var ancestor *ancestorInfo[V]
	var fullChild *tree[V]
	var fullChildSlot slot[V]
	haveFullChild := false

	for {
		entryBit0 := bit0
		sample := cur.sample(0, tr.keyOf)

		if !cur.full(tr.branchCap) {
			a := ancestorInfo[V]{slot: curSlot, tree: cur, bit0: entryBit0}
			ancestor = &a
			haveFullChild = false
		} else if ancestor != nil && !haveFullChild {
			fullChild = cur
			fullChildSlot = curSlot
			haveFullChild = true
		}

		br0, br1, lf := 0, cur.branchCount, 0
		for br0 < br1 {
			br := cur.branches[br0]
			skip := int(br.skip)
			diffBit := -1
			for i := 0; i < skip; i++ {
				if bitAtInf(xKey, bit0+i) != bitAtInf(sample, bit0+i) {
					diffBit = bit0 + i
					break
				}
			}
			if diffBit >= 0 {
				return diffResult[V]{
					targetSlot: curSlot, target: cur, targetBit0: entryBit0,
					diffBit: diffBit, ancestor: ancestor,
					fullChild: fullChildOrNil(haveFullChild, fullChild), fullChildSlot: fullChildSlot,
				}, nil
			}
			decisionBit := bit0 + skip
			if bitAtInf(xKey, decisionBit) == 0 {
				br1 = br0 + 1 + int(br.left)
				br0 = br0 + 1
			} else {
				lf = lf + int(br.left) + 1
				br0 = br0 + int(br.left) + 1
				sample = cur.sample(lf, tr.keyOf)
			}
			bit0 = decisionBit + 1
		}

		if cur.isChildAt(lf) {
			child := cur.leaves[lf].child
			curSlot = childSlot[V](cur, lf)
			cur = child
			continue
		}

		sampleKey := tr.keyOf(cur.leaves[lf].data)
		limit := bit0 + 255
		for bitAtInf(xKey, bit0) == bitAtInf(sampleKey, bit0) {
			bit0++
			if bit0 > limit {
				return diffResult[V]{}, fmt.Errorf("trie: add: %w", ErrBitsExhausted)
			}
		}
		return diffResult[V]{
			targetSlot: curSlot, target: cur, targetBit0: entryBit0,
			diffBit: bit0, ancestor: ancestor,
			fullChild: fullChildOrNil(haveFullChild, fullChild), fullChildSlot: fullChildSlot,
		}, nil
	}
}

func fullChildOrNil[V any](have bool, t *tree[V]) *tree[V] {
	if !have {
		return nil
	}
	return t
}

// locateInsertion re-descends t's branches with xKey, stopping at the
// first branch whose decision bit is >= diffBit. When mutate is true,
// every branch taken left has its left field incremented in place.
func (t *tree[V]) locateInsertion(xKey []byte, entryBit0, diffBit int, mutate bool) (br0, br1, lf, bit0 int) {
	br0, br1, lf = 0, t.branchCount, 0
	bit0 = entryBit0
	for br0 < br1 {
		br := &t.branches[br0]
		decisionBit := bit0 + int(br.skip)
		if decisionBit >= diffBit {
			break
		}
		left := int(br.left)
		if bitAtInf(xKey, decisionBit) == 0 {
			if mutate {
				br.left++
			}
			br0 = br0 + 1
			br1 = br0 + left
		} else {
			br0 = br0 + left + 1
			lf = lf + left + 1
		}
		bit0 = decisionBit + 1
	}
	return br0, br1, lf, bit0
}

// expandInPlace inserts x's leaf into a non-full target tree once diffBit
// is known, splitting the branch that straddles diffBit if one exists.
func (tr *Trie[V]) expandInPlace(target *tree[V], entryBit0 int, xKey []byte, x V, diffBit int) {
	stopBr0, br1, lf, stopBit0 := target.locateInsertion(xKey, entryBit0, diffBit, true)

	residualBranches := br1 - stopBr0
	residualLeaves := residualBranches + 1
	isRight := bitAtInf(xKey, diffBit) == 1

	leafPos := lf
	var newLeft uint8
	if isRight {
		leafPos = lf + residualLeaves
		newLeft = uint8(residualBranches)
	}
	newSkip := uint8(diffBit - stopBit0)

	if stopBr0 < br1 {
		target.branches[stopBr0].skip -= uint8(diffBit - stopBit0 + 1)
	}

	target.insertAt(stopBr0, branch{left: newLeft, skip: newSkip}, leafPos, leaf[V]{data: x}, false)
}

// addUnique inserts a key known not to be present yet. It locates the
// first bit at which xKey differs from a representative existing key,
// then either expands a non-full target tree in place or splits a full
// one and retries. Every retry restarts the search from the true root
// rather than resuming from a remembered unfull ancestor: a promotion can
// push that ancestor to exactly full, and restarting from the root avoids
// having to tell that case apart from "the ancestor is the forest root".
func (tr *Trie[V]) addUnique(x V) error {
	xKey := tr.keyOf(x)
	if err := validateKey(xKey); err != nil {
		return err
	}
	if tr.root == nil {
		tr.root = newLeafTree[V](tr.branchCap, x)
		tr.size++
		tr.gen++
		return nil
	}
	for {
		res, err := tr.findDiffBit(xKey)
		if err != nil {
			return err
		}
		if !res.target.full(tr.branchCap) {
			tr.expandInPlace(res.target, res.targetBit0, xKey, x, res.diffBit)
			tr.size++
			tr.gen++
			return nil
		}
		if res.ancestor == nil {
			tr.splitRoot()
		} else {
			tr.splitChild(res.ancestor, res.fullChild, res.fullChildSlot)
		}
	}
}
