package trie

// splitOff divides a full tree l (branchCount branches) in two: l keeps its
// leftmost leftOfRoot+1 leaves and branches [1..leftOfRoot] (branch 0 is
// being promoted out of l entirely); the returned right sibling takes the
// remainder. Because every branch's left/skip fields are relative offsets,
// neither half needs its retained branches rewritten — only the backing
// arrays are re-sliced.
func splitOff[V any](l *tree[V], leftOfRoot, branchCap int) *tree[V] {
	oldBranchCount := l.branchCount

	r := newTreeWithCapacity[V](branchCap)
	r.branches = append(r.branches, l.branches[leftOfRoot+1:oldBranchCount]...)
	r.leaves = append(r.leaves, l.leaves[leftOfRoot+1:oldBranchCount+1]...)
	for i := 0; i < len(r.leaves); i++ {
		r.isChild.set(i, l.isChild.test(leftOfRoot+1+i))
	}
	r.branchCount = oldBranchCount - leftOfRoot - 1

	newLBranches := make([]branch, leftOfRoot, branchCap)
	copy(newLBranches, l.branches[1:leftOfRoot+1])
	newLLeaves := make([]leaf[V], leftOfRoot+1, branchCap+1)
	copy(newLLeaves, l.leaves[0:leftOfRoot+1])
	var newLChild bitmap
	for i := 0; i < len(newLLeaves); i++ {
		newLChild.set(i, l.isChild.test(i))
	}
	l.branches = newLBranches
	l.leaves = newLLeaves
	l.isChild = newLChild
	l.branchCount = leftOfRoot

	return r
}

// splitRoot handles the case where the root tree is full and no unfull
// ancestor exists: a brand new root tree is allocated with a single
// promoted branch pointing at the (now shrunk) old root and a new right
// sibling.
func (tr *Trie[V]) splitRoot() {
	l := tr.root
	leftOfRoot := int(l.branches[0].left)
	promoted := l.branches[0]

	r := splitOff(l, leftOfRoot, tr.branchCap)

	newRoot := newTreeWithCapacity[V](tr.branchCap)
	newRoot.branches = append(newRoot.branches, branch{left: 0, skip: promoted.skip})
	newRoot.leaves = append(newRoot.leaves, leaf[V]{child: l}, leaf[V]{child: r})
	newRoot.isChild.set(0, true)
	newRoot.isChild.set(1, true)
	newRoot.branchCount = 1

	tr.root = newRoot
}

// locateByLeafIndex finds, within tree p, the branch array position at
// which a new branch must be inserted to split leaf idx into two
// siblings, incrementing left along the way for every branch whose left
// subtree contains idx.
func locateByLeafIndex[V any](p *tree[V], idx int) int {
	br0, br1, lf := 0, p.branchCount, 0
	for br0 < br1 {
		cur := br0
		br := &p.branches[cur]
		left := int(br.left)
		if idx < lf+left+1 {
			br.left++
			br0 = cur + 1
			br1 = br0 + left
		} else {
			lf = lf + left + 1
			br0 = cur + 1 + left
		}
	}
	return br0
}

// splitChild handles the ordinary case: fullChild (a full tree reached
// directly below the unfull ancestor) is split, and its promoted root
// branch is inserted into the ancestor, exactly where fullChild's leaf
// slot used to sit.
func (tr *Trie[V]) splitChild(ancestor *ancestorInfo[V], fullChild *tree[V], fullChildSlot slot[V]) {
	leftOfRoot := int(fullChild.branches[0].left)
	promoted := fullChild.branches[0]

	r := splitOff(fullChild, leftOfRoot, tr.branchCap)

	p := ancestor.tree
	idx := fullChildSlot.index
	insertBr := locateByLeafIndex(p, idx)
	p.insertAt(insertBr, branch{left: 0, skip: promoted.skip}, idx+1, leaf[V]{child: r}, true)
}
