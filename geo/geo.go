// Package geo provides the planar geometry primitives shared by kdtree
// and rtree: points carrying an opaque payload, and axis-aligned
// minimum bounding rectangles (MBRs) with the algebra both index
// structures need to maintain their invariants.
package geo

import "math"

// Point is a planar location plus an opaque payload. By convention X is
// longitude and Y is latitude.
type Point struct {
	X, Y    float64
	Payload interface{}
}

// civID is implemented by payloads that participate in Point equality.
// Payloads that don't implement it are compared by coordinates alone.
type civID interface {
	CivID() int
}

// Equal reports whether two points have identical coordinates and,
// if both payloads implement civID, identical ids. Name/startYear (or
// any other payload field) never participate.
func (p Point) Equal(o Point) bool {
	if p.X != o.X || p.Y != o.Y {
		return false
	}
	a, aok := p.Payload.(civID)
	b, bok := o.Payload.(civID)
	if aok && bok {
		return a.CivID() == b.CivID()
	}
	return true
}

// Rectangle is an axis-aligned minimum bounding rectangle.
type Rectangle struct {
	XMin, YMin, XMax, YMax float64
}

// Empty is the canonical inverted sentinel rectangle: combining it with
// any rectangle R yields R, and its own area is zero.
var Empty = Rectangle{
	XMin: math.Inf(1), YMin: math.Inf(1),
	XMax: math.Inf(-1), YMax: math.Inf(-1),
}

// PointRect returns the degenerate, zero-area rectangle at p.
func PointRect(p Point) Rectangle {
	return Rectangle{XMin: p.X, YMin: p.Y, XMax: p.X, YMax: p.Y}
}

// Area returns the rectangle's area, treating an inverted (empty) box
// as zero rather than negative.
func (r Rectangle) Area() float64 {
	w := r.XMax - r.XMin
	h := r.YMax - r.YMin
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w * h
}

// Margin returns the full perimeter, 2*(width+height), the measure
// split-axis heuristics use; an inverted (empty) box counts as zero.
func (r Rectangle) Margin() float64 {
	w := r.XMax - r.XMin
	h := r.YMax - r.YMin
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return 2 * (w + h)
}

// Combine returns the tight MBR containing both r and s.
func (r Rectangle) Combine(s Rectangle) Rectangle {
	return Rectangle{
		XMin: math.Min(r.XMin, s.XMin),
		YMin: math.Min(r.YMin, s.YMin),
		XMax: math.Max(r.XMax, s.XMax),
		YMax: math.Max(r.YMax, s.YMax),
	}
}

// Expand grows r in place to also cover s.
func (r *Rectangle) Expand(s Rectangle) {
	*r = r.Combine(s)
}

// Intersects reports non-strict overlap; rectangles that merely touch
// along an edge count as intersecting.
func (r Rectangle) Intersects(s Rectangle) bool {
	return r.XMin <= s.XMax && s.XMin <= r.XMax &&
		r.YMin <= s.YMax && s.YMin <= r.YMax
}

// Contains reports closed-box membership of the point.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.XMin && p.X <= r.XMax && p.Y >= r.YMin && p.Y <= r.YMax
}

// ContainsRect reports whether r fully encloses s (closed box).
func (r Rectangle) ContainsRect(s Rectangle) bool {
	return s.XMin >= r.XMin && s.XMax <= r.XMax && s.YMin >= r.YMin && s.YMax <= r.YMax
}

// Enlargement returns the additional area r would need to also cover s.
func (r Rectangle) Enlargement(s Rectangle) float64 {
	return r.Combine(s).Area() - r.Area()
}

// Overlap returns the area of the intersection of r and s, or zero if
// they don't overlap.
func (r Rectangle) Overlap(s Rectangle) float64 {
	if !r.Intersects(s) {
		return 0
	}
	left := math.Max(r.XMin, s.XMin)
	right := math.Min(r.XMax, s.XMax)
	bottom := math.Max(r.YMin, s.YMin)
	top := math.Min(r.YMax, s.YMax)
	o := Rectangle{XMin: left, YMin: bottom, XMax: right, YMax: top}
	return o.Area()
}

// DistanceToPoint returns the exact Euclidean distance from the closest
// point of the closed rectangle to p; zero when p is inside or on the
// boundary.
func (r Rectangle) DistanceToPoint(p Point) float64 {
	dx := math.Max(0, math.Max(r.XMin-p.X, p.X-r.XMax))
	dy := math.Max(0, math.Max(r.YMin-p.Y, p.Y-r.YMax))
	return math.Sqrt(dx*dx + dy*dy)
}

// Center returns the midpoint of the rectangle.
func (r Rectangle) Center() Point {
	return Point{X: r.XMin + (r.XMax-r.XMin)/2, Y: r.YMin + (r.YMax-r.YMin)/2}
}

// Distance returns the planar Euclidean distance between two (lat, lon)
// coordinate pairs. Both kdtree and rtree NN searches funnel through
// this so their results agree bit-for-bit (spec's S3 oracle test).
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
