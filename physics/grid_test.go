package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/kinetic/vmath"
)

func TestGridBinsCircleIntoTouchedCells(t *testing.T) {
	// Radius 1 at the origin with cell size 1: AABB spans [-1,1] on both
	// axes, touching a 3x3 block of cells
	g := newGrid([]Circle{{ID: 0, Center: vmath.V3Zero(), Radius: 1}}, 1)

	assert.Len(t, g.cells, 9)
	assert.Len(t, g.keys, 9)
	for _, bucket := range g.cells {
		assert.Equal(t, []int32{0}, bucket)
	}
}

func TestGridNeighborsShareACell(t *testing.T) {
	g := newGrid([]Circle{
		{ID: 0, Center: vmath.V3(0, 0, 0), Radius: 1},
		{ID: 1, Center: vmath.V3(1.5, 0, 0), Radius: 1},
	}, 2)

	shared := false
	for _, bucket := range g.cells {
		if len(bucket) == 2 {
			shared = true
			break
		}
	}
	assert.True(t, shared, "overlapping circles must share at least one cell")
}

func TestGridKeysSorted(t *testing.T) {
	circles := seededCircles(100, 3)
	g := newGrid(circles, 2)

	require.NotEmpty(t, g.keys)
	for i := 1; i < len(g.keys); i++ {
		assert.Less(t, g.keys[i-1], g.keys[i], "keys must be strictly increasing")
	}
	assert.Len(t, g.cells, len(g.keys))
}

func TestCellKeyDistinguishesAxes(t *testing.T) {
	// (x, y) and (y, x) must land in different buckets
	assert.NotEqual(t, cellKey(1, 2), cellKey(2, 1))
	assert.NotEqual(t, cellKey(0, 1), cellKey(1, 0))
	assert.NotEqual(t, cellKey(-1, 0), cellKey(0, -1))
	// And the same cell always hashes the same
	assert.Equal(t, cellKey(7, -3), cellKey(7, -3))
}

func TestMedianRadius(t *testing.T) {
	assert.Zero(t, medianRadius(nil))
	assert.Equal(t, 2.0, medianRadius([]Circle{{Radius: 2}}))
	assert.Equal(t, 3.0, medianRadius([]Circle{
		{Radius: 5}, {Radius: 1}, {Radius: 3},
	}))
	assert.Zero(t, medianRadius([]Circle{{Radius: 0}, {Radius: 0}}))
}
