package main

import (
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/kinetic/component"
	"github.com/lixenwraith/kinetic/engine"
	"github.com/lixenwraith/kinetic/vmath"
)

const worldExtent = 100.0 // Half-width of the square the workloads move in

// newCircleMovementCmd benchmarks kinetic integration and the scene pass:
// entities bounce inside a box, no colliders attached.
func newCircleMovementCmd(opts *benchOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "circle-movement",
		Short: "Transform update throughput with moving entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine(opts)
			if err != nil {
				return err
			}
			stop := startProfile(opts.Profile)
			defer stop()

			spawnMovers(e.World(), opts.Entities, opts.Seed, false)
			e.AddSystem(&bounceSystem{bounds: worldExtent})

			return runFrames(e, opts.Frames, "circle-movement", nil)
		},
	}
}

// spawnMovers fills the world with moving entities at seeded random
// positions; withColliders also attaches circle colliders.
func spawnMovers(w *engine.World, n int, seed int64, withColliders bool) {
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		e := w.CreateEntity()
		pos := vmath.V3(
			(rng.Float64()*2-1)*worldExtent,
			(rng.Float64()*2-1)*worldExtent,
			0,
		)
		_ = w.Transforms.Insert(e, component.NewTransformAt(pos))
		_ = w.Kinetics.Insert(e, component.Kinetic{
			Velocity: vmath.V3(
				(rng.Float64()*2-1)*10,
				(rng.Float64()*2-1)*10,
				0,
			),
		})
		if withColliders {
			_ = w.Colliders.Insert(e, component.NewCircleCollider(0.5+rng.Float64()))
		}
	}
}

// bounceSystem reflects velocities at the box walls
type bounceSystem struct {
	bounds float64
}

func (s *bounceSystem) Priority() int { return 10 }

func (s *bounceSystem) Update(w *engine.World, dt float64) {
	for e, k := range w.Kinetics.All() {
		tr, ok := w.Transforms.GetMut(e)
		if !ok {
			continue
		}
		if (tr.Position.X > s.bounds && k.Velocity.X > 0) ||
			(tr.Position.X < -s.bounds && k.Velocity.X < 0) {
			k.Velocity.X = -k.Velocity.X
		}
		if (tr.Position.Y > s.bounds && k.Velocity.Y > 0) ||
			(tr.Position.Y < -s.bounds && k.Velocity.Y < 0) {
			k.Velocity.Y = -k.Velocity.Y
		}
	}
}
