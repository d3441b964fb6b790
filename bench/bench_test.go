package bench

import (
	"testing"

	"civspatial/civ"
	"civspatial/rtree"
)

func TestLinearNearest(t *testing.T) {
	civs := []civ.Civilization{
		{ID: 0, Latitude: 0, Longitude: 0},
		{ID: 1, Latitude: 10, Longitude: 10},
		{ID: 2, Latitude: -5, Longitude: -5},
	}
	best, dist := LinearNearest(civs, 1, 1)
	if best.ID != 0 {
		t.Fatalf("expected id 0, got %d", best.ID)
	}
	if dist <= 0 {
		t.Fatalf("expected positive distance, got %f", dist)
	}
}

func TestLinearNearestEmpty(t *testing.T) {
	_, dist := LinearNearest(nil, 0, 0)
	if dist < 1e300 {
		t.Fatal("expected +Inf distance on empty input")
	}
}

func BenchmarkRTreeInsert(b *testing.B) {
	civs := randomCivs(b.N, 42)
	rt := rtree.New(8)
	b.ResetTimer() //start the timer from here
	for i := 0; i < b.N; i++ {
		rt.Insert(civs[i])
	}
}

func BenchmarkRTreeSearch(b *testing.B) {
	rt := rtree.New(8)
	civs := randomCivs(25000, 1)
	for _, c := range civs {
		rt.Insert(c)
	}
	b.ResetTimer() //start the timer from here
	for i := 0; i < b.N; i++ {
		rt.Search(-5, 5, -5, 5)
	}
}

func BenchmarkRTreeNearestNeighbor(b *testing.B) {
	rt := rtree.New(8)
	civs := randomCivs(25000, 2)
	for _, c := range civs {
		rt.Insert(c)
	}
	b.ResetTimer() //start the timer from here
	for i := 0; i < b.N; i++ {
		rt.NearestNeighbor(45, 45)
	}
}
