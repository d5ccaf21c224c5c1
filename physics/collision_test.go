package physics

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/kinetic/vmath"
)

func TestDetectOverlappingPair(t *testing.T) {
	d := &Detector{}
	contacts := d.Detect([]Circle{
		{ID: 1, Center: vmath.V3(0, 0, 0), Radius: 1},
		{ID: 2, Center: vmath.V3(1.5, 0, 0), Radius: 1},
	})

	require.Len(t, contacts, 1)
	c := contacts[0]
	assert.Equal(t, uint32(1), c.A)
	assert.Equal(t, uint32(2), c.B)
	assert.InDelta(t, 0.5, c.Depth, 1e-9)
	assert.True(t, vmath.V3ApproxEq(c.Normal, vmath.V3(1, 0, 0), 1e-9))
	assert.True(t, vmath.V3ApproxEq(c.Point, vmath.V3(0.75, 0, 0), 1e-9))
}

func TestDetectSeparatedPair(t *testing.T) {
	d := &Detector{}
	contacts := d.Detect([]Circle{
		{ID: 1, Center: vmath.V3(0, 0, 0), Radius: 1},
		{ID: 2, Center: vmath.V3(3, 0, 0), Radius: 1},
	})
	assert.Empty(t, contacts)
}

func TestDetectTouchingIsContact(t *testing.T) {
	// Distance exactly equal to the radius sum counts as touching
	d := &Detector{}
	contacts := d.Detect([]Circle{
		{ID: 1, Center: vmath.V3(0, 0, 0), Radius: 1},
		{ID: 2, Center: vmath.V3(2, 0, 0), Radius: 1},
	})
	require.Len(t, contacts, 1)
	assert.InDelta(t, 0, contacts[0].Depth, 1e-9)
}

func TestDetectCoincidentCenters(t *testing.T) {
	d := &Detector{}
	contacts := d.Detect([]Circle{
		{ID: 5, Center: vmath.V3(2, 3, 0), Radius: 1},
		{ID: 9, Center: vmath.V3(2, 3, 0), Radius: 0.5},
	})

	require.Len(t, contacts, 1)
	c := contacts[0]
	assert.Equal(t, uint32(5), c.A)
	assert.Equal(t, uint32(9), c.B)
	assert.True(t, vmath.V3ApproxEq(c.Normal, vmath.V3(1, 0, 0), 1e-9),
		"coincident centers resolve with the fixed +X normal")
	assert.InDelta(t, 1.5, c.Depth, 1e-9)
}

func TestDetectFewerThanTwoCircles(t *testing.T) {
	d := &Detector{}
	assert.Empty(t, d.Detect(nil))
	assert.Empty(t, d.Detect([]Circle{{ID: 1, Radius: 1}}))
}

func TestDetectOrderIndependentOfInput(t *testing.T) {
	a := Circle{ID: 1, Center: vmath.V3(0, 0, 0), Radius: 1}
	b := Circle{ID: 2, Center: vmath.V3(1, 0, 0), Radius: 1}

	d := &Detector{}
	fwd := d.Detect([]Circle{a, b})
	rev := d.Detect([]Circle{b, a})

	require.Len(t, fwd, 1)
	require.Len(t, rev, 1)
	assert.Equal(t, fwd[0], rev[0])
}

// seededCircles builds a reproducible cluster dense enough to overlap
func seededCircles(n int, seed int64) []Circle {
	rng := rand.New(rand.NewSource(seed))
	circles := make([]Circle, n)
	for i := range circles {
		circles[i] = Circle{
			ID: uint32(i),
			Center: vmath.V3(
				rng.Float64()*50,
				rng.Float64()*50,
				0,
			),
			Radius: 0.5 + rng.Float64()*1.5,
		}
	}
	return circles
}

// bruteForce is the O(n^2) reference the grid must agree with
func bruteForce(circles []Circle) []Contact {
	var contacts []Contact
	for i := 0; i < len(circles); i++ {
		for j := i + 1; j < len(circles); j++ {
			if c, ok := circleCircle(circles[i], circles[j]); ok {
				contacts = append(contacts, c)
			}
		}
	}
	return contacts
}

func TestDetectMatchesBruteForce(t *testing.T) {
	circles := seededCircles(300, 42)

	d := &Detector{}
	got := d.Detect(circles)
	want := bruteForce(circles)
	require.NotEmpty(t, want, "seeded cluster produced no overlaps; test is vacuous")

	assert.ElementsMatch(t, want, got)
}

func TestDetectParallelMatchesSerial(t *testing.T) {
	circles := seededCircles(500, 7)

	serial := (&Detector{Workers: 1}).Detect(circles)
	parallel := (&Detector{Workers: 8}).Detect(circles)

	require.Equal(t, len(serial), len(parallel))
	assert.Equal(t, serial, parallel, "worker count must not change the output")
}

func TestDetectDeterministicAcrossRuns(t *testing.T) {
	circles := seededCircles(400, 13)
	d := &Detector{}

	first := d.Detect(circles)
	for run := 0; run < 5; run++ {
		assert.Equal(t, first, d.Detect(circles))
	}
}

func TestDetectExplicitCellSize(t *testing.T) {
	circles := seededCircles(200, 99)

	auto := (&Detector{}).Detect(circles)
	coarse := (&Detector{CellSize: 20}).Detect(circles)
	fine := (&Detector{CellSize: 0.5}).Detect(circles)

	// Cell size is a performance knob, never a correctness knob
	assert.Equal(t, auto, coarse)
	assert.Equal(t, auto, fine)
}

func TestDetectGoldenContacts(t *testing.T) {
	d := &Detector{}
	contacts := d.Detect([]Circle{
		{ID: 1, Center: vmath.V3(0, 0, 0), Radius: 1},
		{ID: 2, Center: vmath.V3(1.5, 0, 0), Radius: 1},
		{ID: 3, Center: vmath.V3(0, 1.5, 0), Radius: 1},
		{ID: 4, Center: vmath.V3(10, 10, 0), Radius: 1},
		{ID: 5, Center: vmath.V3(10, 10, 0), Radius: 0.5},
	})

	var buf bytes.Buffer
	for _, c := range contacts {
		fmt.Fprintf(&buf, "A=%d B=%d depth=%.4f normal=(%.4f,%.4f,%.4f) point=(%.4f,%.4f,%.4f)\n",
			c.A, c.B, c.Depth,
			c.Normal.X, c.Normal.Y, c.Normal.Z,
			c.Point.X, c.Point.Y, c.Point.Z)
	}

	g := goldie.New(t)
	g.Assert(t, "contacts", buf.Bytes())
}

func BenchmarkDetect(b *testing.B) {
	circles := seededCircles(10000, 1)
	d := &Detector{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Detect(circles)
	}
}
