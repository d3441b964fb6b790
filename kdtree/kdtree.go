// Package kdtree implements a static, build-once 2-dimensional k-d tree
// over civilization coordinates. It has no rebalancing and no delete;
// its sole purpose in this system is to serve as the correctness oracle
// that rtree's range search and nearest-neighbor results are checked
// against (they must agree on the same input set).
package kdtree

import (
	"math"

	"civspatial/civ"
	"civspatial/geo"
)

// Node is a single k-d tree node. The splitting dimension alternates by
// depth: even depth compares on latitude, odd on longitude. A node is
// exclusively owned by its parent's left/right slot; the tree's Root
// owns the root node.
type Node struct {
	Civ   civ.Civilization
	Left  *Node
	Right *Node
}

// Tree is a handle to a k-d tree's root.
type Tree struct {
	Root *Node
}

// Insert adds c to the tree, growing it via the standard recursive BSP
// insertion. No duplicate rejection: equal keys are admitted on the
// right, matching the source's "cd==0 && civ.lat < root.lat" routing.
func (t *Tree) Insert(c civ.Civilization) {
	t.Root = insert(t.Root, c, 0)
}

func insert(root *Node, c civ.Civilization, depth int) *Node {
	if root == nil {
		return &Node{Civ: c}
	}
	if splitLess(depth, c, root.Civ) {
		root.Left = insert(root.Left, c, depth+1)
	} else {
		root.Right = insert(root.Right, c, depth+1)
	}
	return root
}

// splitLess reports whether c routes left of root at the given depth:
// strict less-than on the dimension selected by depth's parity.
func splitLess(depth int, c, root civ.Civilization) bool {
	if depth%2 == 0 {
		return c.Latitude < root.Latitude
	}
	return c.Longitude < root.Longitude
}

// RangeSearch collects every civilization whose coordinates lie in the
// closed box [latMin,latMax] x [lonMin,lonMax].
func (t *Tree) RangeSearch(latMin, latMax, lonMin, lonMax float64) []civ.Civilization {
	var result []civ.Civilization
	rangeSearch(t.Root, latMin, latMax, lonMin, lonMax, 0, &result)
	return result
}

func rangeSearch(root *Node, latMin, latMax, lonMin, lonMax float64, depth int, result *[]civ.Civilization) {
	if root == nil {
		return
	}
	if root.Civ.Latitude >= latMin && root.Civ.Latitude <= latMax &&
		root.Civ.Longitude >= lonMin && root.Civ.Longitude <= lonMax {
		*result = append(*result, root.Civ)
	}

	// The asymmetry (strict on the low side, non-strict on the high
	// side) mirrors the `<` insertion rule and must be preserved
	// exactly to match the R-tree oracle.
	var descendLeft, descendRight bool
	if depth%2 == 0 {
		descendLeft = latMin < root.Civ.Latitude
		descendRight = latMax >= root.Civ.Latitude
	} else {
		descendLeft = lonMin < root.Civ.Longitude
		descendRight = lonMax >= root.Civ.Longitude
	}
	if descendLeft {
		rangeSearch(root.Left, latMin, latMax, lonMin, lonMax, depth+1, result)
	}
	if descendRight {
		rangeSearch(root.Right, latMin, latMax, lonMin, lonMax, depth+1, result)
	}
}

// NearestNeighbor returns the closest civilization to (lat, lon) and its
// distance. On an empty tree it returns the zero Civilization and
// +Inf, matching the initial sentinel.
func (t *Tree) NearestNeighbor(lat, lon float64) (civ.Civilization, float64) {
	best := civ.Civilization{}
	bestDist := math.Inf(1)
	nearestNeighbor(t.Root, lat, lon, 0, &best, &bestDist)
	return best, bestDist
}

func nearestNeighbor(root *Node, lat, lon float64, depth int, best *civ.Civilization, bestDist *float64) {
	if root == nil {
		return
	}
	d := geo.Distance(lat, lon, root.Civ.Latitude, root.Civ.Longitude)
	if d < *bestDist {
		*bestDist = d
		*best = root.Civ
	}

	var near, far *Node
	var queryVal, nodeVal float64
	if depth%2 == 0 {
		queryVal, nodeVal = lat, root.Civ.Latitude
	} else {
		queryVal, nodeVal = lon, root.Civ.Longitude
	}
	if queryVal < nodeVal {
		near, far = root.Left, root.Right
	} else {
		near, far = root.Right, root.Left
	}

	nearestNeighbor(near, lat, lon, depth+1, best, bestDist)

	if math.Abs(queryVal-nodeVal) < *bestDist {
		nearestNeighbor(far, lat, lon, depth+1, best, bestDist)
	}
}
