package rtree

import (
	"civspatial/civ"
	"civspatial/geo"
)

// Remove deletes one occurrence of c (matched by coordinates and id,
// see geo.Point.Equal) from the tree and reports whether anything was
// removed. Grounded on original_source/core/rtree/rtree.cpp's
// findLeaf/remove, condensing by flattening and reinserting orphaned
// entries rather than tracking levels, per spec.md's stated preference
// for the simpler scheme.
func (t *Tree) Remove(c civ.Civilization) bool {
	target := toPoint(c)
	leaf, idx := t.findLeaf(t.root, target)
	if leaf == nil {
		return false
	}

	leaf.points = append(leaf.points[:idx], leaf.points[idx+1:]...)
	leaf.retightenMBR()

	t.condenseTree(leaf)

	if !t.root.isLeaf && len(t.root.children) == 1 {
		t.root = t.root.children[0]
		t.root.parent = nil
	}

	return true
}

// findLeaf locates the leaf holding an entry equal to target, descending
// only into children whose MBR contains the point (an entry cannot live
// outside its ancestors' bounding boxes).
func (t *Tree) findLeaf(n *node, target geo.Point) (*node, int) {
	if !n.mbr.Contains(target) && n != t.root {
		return nil, -1
	}
	if n.isLeaf {
		for i, p := range n.points {
			if p.Equal(target) {
				return n, i
			}
		}
		return nil, -1
	}
	for _, c := range n.children {
		if c.mbr.Contains(target) {
			if leaf, idx := t.findLeaf(c, target); leaf != nil {
				return leaf, idx
			}
		}
	}
	return nil, -1
}

// condenseTree walks upward from n, removing any node that has
// underflowed (fewer than minChildren entries, except the root) and
// collecting its surviving entries for reinsertion once the walk
// reaches the root, then retightening every remaining ancestor's MBR.
func (t *Tree) condenseTree(n *node) {
	var orphanPoints []geo.Point
	var orphanNodes []*node

	for n != t.root {
		parent := n.parent
		if n.entryCount() < t.minChildren {
			removeChild(parent, n)
			if n.isLeaf {
				orphanPoints = append(orphanPoints, n.points...)
			} else {
				orphanNodes = append(orphanNodes, n.children...)
			}
		} else {
			parent.retightenMBR()
		}
		n = parent
	}

	for _, p := range orphanPoints {
		t.reinsertPoint(p)
	}
	for _, child := range orphanNodes {
		t.reinsertSubtree(child)
	}
}

// removeChild excises child from parent's children slice.
func removeChild(parent, child *node) {
	idx := child.indexInParent()
	if idx < 0 {
		return
	}
	parent.children = append(parent.children[:idx], parent.children[idx+1:]...)
	parent.retightenMBR()
}

// reinsertPoint reinserts a single orphaned point through the ordinary
// insert path (chooseLeaf + split-on-overflow).
func (t *Tree) reinsertPoint(p geo.Point) {
	leaf := t.chooseLeaf(p)
	leaf.points = append(leaf.points, p)
	leaf.retightenMBR()

	var split *node
	if len(leaf.points) > t.maxChildren {
		split = t.splitNode(leaf)
	}
	t.adjustTree(leaf, split)
}

// reinsertSubtree reinserts every leaf-level point beneath an orphaned
// internal node, flattening it first; condenseTree never orphans
// single points out of internal nodes, only whole subtrees, and
// flatten-then-reinsert-as-points is the scheme spec.md calls for to
// avoid level-tracking bugs.
func (t *Tree) reinsertSubtree(n *node) {
	for _, p := range collectPoints(n) {
		t.reinsertPoint(p)
	}
}

func collectPoints(n *node) []geo.Point {
	if n.isLeaf {
		return append([]geo.Point(nil), n.points...)
	}
	var out []geo.Point
	for _, c := range n.children {
		out = append(out, collectPoints(c)...)
	}
	return out
}
