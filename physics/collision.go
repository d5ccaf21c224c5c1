// Package physics implements broad- and narrow-phase collision detection
// over circle colliders. It is a pure geometry library: callers supply
// positioned circles with stable ids and receive contacts ordered by id,
// reproducible across runs for identical input.
package physics

import (
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/kinetic/vmath"
)

// Circle is one collision participant in the XY plane
type Circle struct {
	ID     uint32 // Caller-defined stable id; contact ordering sorts on it
	Center vmath.Vec3
	Radius float64
}

// Contact is one detected overlap. A carries the smaller id.
type Contact struct {
	A, B   uint32
	Point  vmath.Vec3 // Midpoint along the connecting segment
	Normal vmath.Vec3 // Unit vector from A toward B
	Depth  float64
}

// Detector runs the two-phase collision pipeline
type Detector struct {
	// CellSize overrides the broad-phase cell edge; zero derives
	// 2x the median radius from the input each frame
	CellSize float64

	// Workers bounds the broad-phase pool; zero means GOMAXPROCS
	Workers int
}

// Detect returns all circle overlaps among the input, sorted by (A, B).
// Broad-phase buckets may be processed in parallel; partial results are
// merged in bucket order so the output is identical to a serial run.
func (d *Detector) Detect(circles []Circle) []Contact {
	if len(circles) < 2 {
		return nil
	}

	cellSize := d.CellSize
	if cellSize <= 0 {
		cellSize = 2 * medianRadius(circles)
		if cellSize <= 0 {
			cellSize = 1 // All-zero radii: any uniform size works
		}
	}

	g := newGrid(circles, cellSize)
	pairs := d.candidatePairs(g)

	contacts := make([]Contact, 0, len(pairs))
	for _, p := range pairs {
		if c, ok := circleCircle(circles[p[0]], circles[p[1]]); ok {
			contacts = append(contacts, c)
		}
	}

	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].A != contacts[j].A {
			return contacts[i].A < contacts[j].A
		}
		return contacts[i].B < contacts[j].B
	})
	return contacts
}

// candidatePairs enumerates same-cell index pairs, deduplicated, in a
// stable order. Cells are swept in sorted key order, split across workers
// by contiguous key ranges and concatenated in range order, never in
// completion order.
func (d *Detector) candidatePairs(g *grid) [][2]int32 {
	workers := d.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(g.keys) {
		workers = len(g.keys)
	}
	if workers < 1 {
		workers = 1
	}

	parts := make([][][2]int32, workers)
	chunk := (len(g.keys) + workers - 1) / workers

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(g.keys))
		if lo >= hi {
			break
		}
		out := &parts[w]
		eg.Go(func() error {
			var local [][2]int32
			for _, key := range g.keys[lo:hi] {
				bucket := g.cells[key]
				for i := 0; i < len(bucket); i++ {
					for j := i + 1; j < len(bucket); j++ {
						a, b := bucket[i], bucket[j]
						if a > b {
							a, b = b, a
						}
						local = append(local, [2]int32{a, b})
					}
				}
			}
			*out = local
			return nil
		})
	}
	_ = eg.Wait() // Workers never fail; the group provides the join

	// Merge in partition order, dropping pairs seen in earlier buckets
	// (a circle spanning several cells meets its neighbor more than once)
	seen := make(map[uint64]struct{})
	var pairs [][2]int32
	for _, part := range parts {
		for _, p := range part {
			key := uint64(uint32(p[0]))<<32 | uint64(uint32(p[1]))
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// circleCircle is the narrow phase: overlap iff the center distance does
// not exceed the radius sum. Coincident centers are a documented
// degenerate case, resolved with a fixed +X normal rather than a failure.
func circleCircle(a, b Circle) (Contact, bool) {
	if a.ID > b.ID {
		a, b = b, a
	}

	delta := vmath.V3Sub(b.Center, a.Center)
	rsum := a.Radius + b.Radius
	distSq := vmath.V3MagSq(delta)
	if distSq > rsum*rsum {
		return Contact{}, false
	}

	dist := math.Sqrt(distSq)
	normal := vmath.V3(1, 0, 0)
	if dist > 0 {
		normal = vmath.V3Scale(delta, 1/dist)
	}
	depth := rsum - dist

	// Contact point: midway through the overlap along the center segment
	point := vmath.V3Add(a.Center, vmath.V3Scale(normal, a.Radius-depth*0.5))

	return Contact{
		A:      a.ID,
		B:      b.ID,
		Point:  point,
		Normal: normal,
		Depth:  depth,
	}, true
}
