package kdtree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civspatial/civ"
)

func TestEmptyTreeNearestNeighbor(t *testing.T) {
	var tr Tree
	best, dist := tr.NearestNeighbor(0, 0)
	assert.Equal(t, civ.Civilization{}, best)
	assert.True(t, math.IsInf(dist, 1))
}

func TestEmptyTreeRangeSearch(t *testing.T) {
	var tr Tree
	got := tr.RangeSearch(-90, 90, -180, 180)
	assert.Empty(t, got)
}

func TestInsertAndRangeSearch(t *testing.T) {
	var tr Tree
	civs := []civ.Civilization{
		{ID: 0, Latitude: 0, Longitude: 0},
		{ID: 1, Latitude: 10, Longitude: 10},
		{ID: 2, Latitude: -10, Longitude: 10},
		{ID: 3, Latitude: 10, Longitude: -10},
		{ID: 4, Latitude: -10, Longitude: -10},
		{ID: 5, Latitude: 2, Longitude: 2},
	}
	for _, c := range civs {
		tr.Insert(c)
	}

	got := tr.RangeSearch(-10, 10, -10, 10)
	require.Len(t, got, len(civs))

	got = tr.RangeSearch(0, 10, 0, 10)
	ids := idSet(got)
	assert.ElementsMatch(t, []int{0, 1, 5}, ids)
}

func TestRangeSearchBoundaryInclusive(t *testing.T) {
	var tr Tree
	tr.Insert(civ.Civilization{ID: 1, Latitude: 10, Longitude: 10})
	got := tr.RangeSearch(10, 10, 10, 10)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestDuplicateCoordinatesAdmitted(t *testing.T) {
	var tr Tree
	tr.Insert(civ.Civilization{ID: 1, Latitude: 0, Longitude: 0})
	tr.Insert(civ.Civilization{ID: 2, Latitude: 0, Longitude: 0})
	got := tr.RangeSearch(-1, 1, -1, 1)
	require.Len(t, got, 2)
}

func TestNearestNeighborAgainstLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var tr Tree
	var civs []civ.Civilization
	for i := 0; i < 2000; i++ {
		c := civ.Civilization{
			ID:        i,
			Latitude:  rng.Float64()*180 - 90,
			Longitude: rng.Float64()*360 - 180,
		}
		civs = append(civs, c)
		tr.Insert(c)
	}

	for q := 0; q < 50; q++ {
		qlat := rng.Float64()*180 - 90
		qlon := rng.Float64()*360 - 180

		_, kdDist := tr.NearestNeighbor(qlat, qlon)
		linearDist := linearNearest(civs, qlat, qlon)
		assert.InDelta(t, linearDist, kdDist, 1e-9)
	}
}

func linearNearest(civs []civ.Civilization, lat, lon float64) float64 {
	best := math.Inf(1)
	for _, c := range civs {
		d := math.Hypot(lat-c.Latitude, lon-c.Longitude)
		if d < best {
			best = d
		}
	}
	return best
}

func idSet(civs []civ.Civilization) []int {
	ids := make([]int, len(civs))
	for i, c := range civs {
		ids[i] = c.ID
	}
	return ids
}
