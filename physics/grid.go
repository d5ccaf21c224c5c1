package physics

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// cellKey hashes 2D cell coordinates into a sparse bucket key.
// A hash collision only merges two buckets, which costs extra candidate
// pairs in the broad phase, never a missed contact.
func cellKey(cx, cy int32) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(cx))
	binary.LittleEndian.PutUint32(buf[4:], uint32(cy))
	return xxhash.Sum64(buf[:])
}

// grid is a sparse uniform grid over the XY plane used as the broad phase.
// Each circle is binned into every cell its AABB touches.
type grid struct {
	cellSize float64
	cells    map[uint64][]int32 // bucket key -> circle indices, insertion order
	keys     []uint64           // sorted bucket keys for deterministic sweeps
}

// newGrid bins the circles with the given cell size
func newGrid(circles []Circle, cellSize float64) *grid {
	g := &grid{
		cellSize: cellSize,
		cells:    make(map[uint64][]int32, len(circles)),
	}

	inv := 1.0 / cellSize
	for i, c := range circles {
		minX := int32(math.Floor((c.Center.X - c.Radius) * inv))
		maxX := int32(math.Floor((c.Center.X + c.Radius) * inv))
		minY := int32(math.Floor((c.Center.Y - c.Radius) * inv))
		maxY := int32(math.Floor((c.Center.Y + c.Radius) * inv))

		for cy := minY; cy <= maxY; cy++ {
			for cx := minX; cx <= maxX; cx++ {
				key := cellKey(cx, cy)
				if _, ok := g.cells[key]; !ok {
					g.keys = append(g.keys, key)
				}
				g.cells[key] = append(g.cells[key], int32(i))
			}
		}
	}

	sort.Slice(g.keys, func(a, b int) bool { return g.keys[a] < g.keys[b] })
	return g
}

// medianRadius returns the median collider radius, the reference length
// for auto-sizing grid cells. Zero only when every radius is zero.
func medianRadius(circles []Circle) float64 {
	if len(circles) == 0 {
		return 0
	}
	radii := make([]float64, len(circles))
	for i, c := range circles {
		radii[i] = c.Radius
	}
	sort.Float64s(radii)
	return radii[len(radii)/2]
}
