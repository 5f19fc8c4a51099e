package bp

// BBTree is a bounding volume hierarchy broad phase. It is rebuilt every
// Update by inserting each collider where it grows the tree's area the least.
type BBTree struct {
	proxies []proxy
	root    *bbNode

	pooledNodes *bbNode
}

type bbNode struct {
	bb     BB
	parent *bbNode

	// children, nil for leaves
	a, b *bbNode

	// index into BBTree.proxies, for leaves
	leaf int32
}

func NewBBTree() *BBTree {
	return &BBTree{}
}

func (node *bbNode) IsLeaf() bool {
	return node.a == nil
}

func (tree *BBTree) Update(bodies *BodySet, colliders *ColliderSet) {
	tree.recycleSubtree(tree.root)
	tree.root = nil

	tree.proxies = collectProxies(bodies, colliders, tree.proxies)
	for i := range tree.proxies {
		tree.root = tree.subtreeInsert(tree.root, tree.newLeaf(int32(i)))
	}
}

func (tree *BBTree) CandidatePairs(dst []ColliderPair) []ColliderPair {
	start := len(dst)
	for i := range tree.proxies {
		a := &tree.proxies[i]
		tree.root.query(a.bb, func(j int32) {
			// each pair is found from both leaves; keep one
			if int(j) <= i {
				return
			}
			b := &tree.proxies[j]
			if !queryReject(a, b) {
				dst = append(dst, makePair(a.handle, b.handle))
			}
		})
	}
	sortPairs(dst[start:])
	return dst
}

func (node *bbNode) query(bb BB, f func(leaf int32)) {
	if node == nil || !node.bb.Intersects(bb) {
		return
	}
	if node.IsLeaf() {
		f(node.leaf)
		return
	}
	node.a.query(bb, f)
	node.b.query(bb, f)
}

func (tree *BBTree) subtreeInsert(subtree *bbNode, leaf *bbNode) *bbNode {
	if subtree == nil {
		return leaf
	}
	if subtree.IsLeaf() {
		return tree.newNode(leaf, subtree)
	}

	costA := subtree.b.bb.Area() + subtree.a.bb.MergedArea(leaf.bb)
	costB := subtree.a.bb.Area() + subtree.b.bb.MergedArea(leaf.bb)

	if costA == costB {
		costA = subtree.a.bb.Proximity(leaf.bb)
		costB = subtree.b.bb.Proximity(leaf.bb)
	}

	if costB < costA {
		nodeSetB(subtree, tree.subtreeInsert(subtree.b, leaf))
	} else {
		nodeSetA(subtree, tree.subtreeInsert(subtree.a, leaf))
	}

	subtree.bb = subtree.bb.Merge(leaf.bb)
	return subtree
}

// Depth is the number of levels of the tree, 0 when empty.
func (tree *BBTree) Depth() int {
	var depth func(node *bbNode) int
	depth = func(node *bbNode) int {
		if node == nil {
			return 0
		}
		if node.IsLeaf() {
			return 1
		}
		return 1 + max(depth(node.a), depth(node.b))
	}
	return depth(tree.root)
}

func (tree *BBTree) newNode(a, b *bbNode) *bbNode {
	node := tree.nodeFromPool()
	node.bb = a.bb.Merge(b.bb)
	node.parent = nil
	node.leaf = -1

	nodeSetA(node, a)
	nodeSetB(node, b)
	return node
}

func nodeSetA(node, value *bbNode) {
	node.a = value
	value.parent = node
}

func nodeSetB(node, value *bbNode) {
	node.b = value
	value.parent = node
}

func (tree *BBTree) newLeaf(idx int32) *bbNode {
	node := tree.nodeFromPool()
	node.bb = tree.proxies[idx].bb
	node.parent = nil
	node.a, node.b = nil, nil
	node.leaf = idx
	return node
}

func (tree *BBTree) nodeFromPool() *bbNode {
	node := tree.pooledNodes

	if node != nil {
		tree.pooledNodes = node.parent
		return node
	}

	// Pool is exhausted make more
	for i := 0; i < 32; i++ {
		tree.nodeRecycle(&bbNode{})
	}

	node = tree.pooledNodes
	tree.pooledNodes = node.parent
	return node
}

func (tree *BBTree) nodeRecycle(node *bbNode) {
	node.a, node.b = nil, nil
	node.parent = tree.pooledNodes
	tree.pooledNodes = node
}

func (tree *BBTree) recycleSubtree(node *bbNode) {
	if node == nil {
		return
	}
	if !node.IsLeaf() {
		tree.recycleSubtree(node.a)
		tree.recycleSubtree(node.b)
	}
	tree.nodeRecycle(node)
}
