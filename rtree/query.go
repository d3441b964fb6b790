package rtree

import (
	"container/heap"
	"math"

	"civspatial/civ"
	"civspatial/geo"
)

// Search returns every civilization whose coordinates lie in the closed
// box [latMin,latMax] x [lonMin,lonMax], found by recursive
// MBR-pruned descent. Grounded on the teacher's searchChildren/
// FindWithin traversal shape.
func (t *Tree) Search(latMin, latMax, lonMin, lonMax float64) []civ.Civilization {
	query := geo.Rectangle{XMin: lonMin, YMin: latMin, XMax: lonMax, YMax: latMax}
	var result []civ.Civilization
	search(t.root, query, &result)
	return result
}

func search(n *node, query geo.Rectangle, result *[]civ.Civilization) {
	if !n.mbr.Intersects(query) {
		return
	}
	if n.isLeaf {
		for _, p := range n.points {
			if query.Contains(p) {
				*result = append(*result, p.Payload.(civ.Civilization))
			}
		}
		return
	}
	for _, c := range n.children {
		search(c, query, result)
	}
}

// nnItem is one pending entry in the best-first priority queue: either
// a node, internal or leaf (to be expanded), or a leaf point (a
// candidate answer), ordered by its MBR's (or point's) distance to the
// query.
type nnItem struct {
	dist  float64
	n     *node
	point *geo.Point
}

type nnQueue []*nnItem

func (q nnQueue) Len() int            { return len(q) }
func (q nnQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q nnQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nnQueue) Push(x interface{}) { *q = append(*q, x.(*nnItem)) }
func (q *nnQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// NearestNeighbor returns the closest civilization to (lat, lon), its
// distance, and whether any civilization was found at all (false only
// for an empty tree). Grounded on
// original_source/core/rtree/rtree.cpp's NNPriNode/nearestNeighbor
// priority-queue loop, expressed with container/heap the way this
// ecosystem builds a best-first search; the bool return mirrors the
// source's `bool RTree::nearestNeighbor(...)`.
func (t *Tree) NearestNeighbor(lat, lon float64) (civ.Civilization, float64, bool) {
	query := geo.Point{X: lon, Y: lat}

	if t.root.isLeaf && len(t.root.points) == 0 {
		return civ.Civilization{}, math.Inf(1), false
	}

	q := &nnQueue{{dist: t.root.mbr.DistanceToPoint(query), n: t.root}}
	heap.Init(q)

	for q.Len() > 0 {
		item := heap.Pop(q).(*nnItem)
		if item.point != nil {
			return item.point.Payload.(civ.Civilization), item.dist, true
		}

		n := item.n
		if n.isLeaf {
			for i := range n.points {
				p := n.points[i]
				d := geo.Distance(lat, lon, p.Y, p.X)
				heap.Push(q, &nnItem{dist: d, point: &p})
			}
			continue
		}
		for _, c := range n.children {
			heap.Push(q, &nnItem{dist: c.mbr.DistanceToPoint(query), n: c})
		}
	}

	return civ.Civilization{}, math.Inf(1), false
}
