package rtree

import (
	"civspatial/civ"
	"civspatial/geo"
)

// toPoint converts a civilization into the geo.Point the tree indexes
// on: longitude as X, latitude as Y, the civilization itself as payload.
func toPoint(c civ.Civilization) geo.Point {
	return geo.Point{X: c.Longitude, Y: c.Latitude, Payload: c}
}

// Insert adds c to the tree: descend to the best leaf, append, split on
// overflow, then propagate MBR changes (and any pending split) upward.
// Grounded on the teacher's chooseSubtree/insert, specialized to
// Guttman's plain least-enlargement descent and quadratic split per the
// source rtree.cpp this system targets.
func (t *Tree) Insert(c civ.Civilization) {
	p := toPoint(c)
	leaf := t.chooseLeaf(p)

	leaf.points = append(leaf.points, p)
	leaf.retightenMBR()

	var split *node
	if len(leaf.points) > t.maxChildren {
		split = t.splitNode(leaf)
	}
	t.adjustTree(leaf, split)
}

// chooseLeaf descends from the root, at each internal node picking the
// child needing least enlargement to contain r (ties broken by
// smaller pre-enlargement area, then by first encountered).
func (t *Tree) chooseLeaf(p geo.Point) *node {
	r := geo.PointRect(p)
	n := t.root
	for !n.isLeaf {
		best := n.children[0]
		bestEnl := best.mbr.Enlargement(r)
		bestArea := best.mbr.Area()
		for _, c := range n.children[1:] {
			enl := c.mbr.Enlargement(r)
			if enl < bestEnl {
				best, bestEnl, bestArea = c, enl, c.mbr.Area()
			} else if enl == bestEnl && c.mbr.Area() < bestArea {
				best, bestEnl, bestArea = c, enl, c.mbr.Area()
			}
		}
		n = best
	}
	return n
}

// splitNode partitions an overflowing node's M+1 entries into the node
// itself and a freshly created sibling, using pickSeeds +
// distributeQuadratic.
func (t *Tree) splitNode(n *node) *node {
	sibling := newNode(n.isLeaf, t.maxChildren, n.parent)
	seed1, seed2 := pickSeeds(n)
	distributeQuadratic(n, sibling, seed1, seed2)
	return sibling
}

// pickSeeds does an O(n^2) scan over all entry pairs and returns the
// indices of the pair maximizing "wasted area":
// area(combine(Ri,Rj)) - area(Ri) - area(Rj).
func pickSeeds(n *node) (int, int) {
	count := n.entryCount()
	rectAt := entryRect(n)

	seed1, seed2 := 0, 1
	maxInefficiency := -1.0
	first := true
	for i := 0; i < count; i++ {
		for j := i + 1; j < count; j++ {
			ri, rj := rectAt(i), rectAt(j)
			combined := ri.Combine(rj)
			inefficiency := combined.Area() - ri.Area() - rj.Area()
			if first || inefficiency > maxInefficiency {
				maxInefficiency = inefficiency
				seed1, seed2 = i, j
				first = false
			}
		}
	}
	return seed1, seed2
}

// entryRect returns a function giving the MBR of the i'th entry of n
// (a point's degenerate rectangle for a leaf, a child's MBR for an
// internal node), so pickSeeds can treat both uniformly.
func entryRect(n *node) func(i int) geo.Rectangle {
	if n.isLeaf {
		return func(i int) geo.Rectangle { return geo.PointRect(n.points[i]) }
	}
	return func(i int) geo.Rectangle { return n.children[i].mbr }
}

// distributeQuadratic drains n's overflowing entries into node and
// sibling, seeding each group with one of the two chosen seeds and then
// greedily assigning the rest by least enlargement (ties broken by
// smaller current group area, then by keeping the original node).
func distributeQuadratic(n, sibling *node, seed1, seed2 int) {
	if n.isLeaf {
		original := n.points
		n.points = nil
		sibling.points = nil

		n.points = append(n.points, original[seed1])
		sibling.points = append(sibling.points, original[seed2])
		n.retightenMBR()
		sibling.retightenMBR()

		for i, p := range original {
			if i == seed1 || i == seed2 {
				continue
			}
			assignPointToGroup(n, sibling, p)
		}
		return
	}

	original := n.children
	n.children = nil
	sibling.children = nil

	n.children = append(n.children, original[seed1])
	original[seed1].parent = n
	sibling.children = append(sibling.children, original[seed2])
	original[seed2].parent = sibling
	n.retightenMBR()
	sibling.retightenMBR()

	for i, c := range original {
		if i == seed1 || i == seed2 {
			continue
		}
		assignChildToGroup(n, sibling, c)
	}
}

func assignPointToGroup(n, sibling *node, p geo.Point) {
	r := geo.PointRect(p)
	enl1 := n.mbr.Enlargement(r)
	enl2 := sibling.mbr.Enlargement(r)
	if enl1 < enl2 || (enl1 == enl2 && n.mbr.Area() <= sibling.mbr.Area()) {
		n.points = append(n.points, p)
		n.retightenMBR()
	} else {
		sibling.points = append(sibling.points, p)
		sibling.retightenMBR()
	}
}

func assignChildToGroup(n, sibling *node, c *node) {
	enl1 := n.mbr.Enlargement(c.mbr)
	enl2 := sibling.mbr.Enlargement(c.mbr)
	if enl1 < enl2 || (enl1 == enl2 && n.mbr.Area() <= sibling.mbr.Area()) {
		c.parent = n
		n.children = append(n.children, c)
		n.retightenMBR()
	} else {
		c.parent = sibling
		sibling.children = append(sibling.children, c)
		sibling.retightenMBR()
	}
}

// adjustTree walks upward from n via parent links, retightening each
// ancestor's MBR and, if a split is pending, linking the sibling into
// the parent and re-splitting if that overflows it in turn. If a split
// still pends once the root is reached, the tree grows a new root.
func (t *Tree) adjustTree(n *node, split *node) {
	for n != t.root {
		parent := n.parent
		parent.retightenMBR()

		if split != nil {
			split.parent = parent
			parent.children = append(parent.children, split)
			parent.retightenMBR()
			if len(parent.children) > t.maxChildren {
				split = t.splitNode(parent)
			} else {
				split = nil
			}
		}
		n = parent
	}

	if split != nil {
		newRoot := newNode(false, t.maxChildren, nil)
		newRoot.children = append(newRoot.children, t.root, split)
		t.root.parent = newRoot
		split.parent = newRoot
		newRoot.retightenMBR()
		t.root = newRoot
	}
}
