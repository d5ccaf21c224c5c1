package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/kinetic/engine"
)

// newCircleCollisionCmd benchmarks the full pipeline: moving circle
// colliders with broad- and narrow-phase detection every frame.
func newCircleCollisionCmd(opts *benchOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "circle-collision",
		Short: "Collision detection throughput with moving circles",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine(opts)
			if err != nil {
				return err
			}
			stop := startProfile(opts.Profile)
			defer stop()

			spawnMovers(e.World(), opts.Entities, opts.Seed, true)
			e.AddSystem(&bounceSystem{bounds: worldExtent})

			counter := &contactCounter{}
			e.AddSystem(counter)

			return runFrames(e, opts.Frames, "circle-collision", func() string {
				return fmt.Sprintf("  Contacts:    %d total, %.2f per frame\n",
					counter.total, float64(counter.total)/float64(opts.Frames))
			})
		},
	}
}

// contactCounter tallies last frame's contacts. It runs in the Simulation
// phase, so it observes the contacts of the previous Collision pass.
type contactCounter struct {
	total uint64
}

func (c *contactCounter) Priority() int { return 100 }

func (c *contactCounter) Update(w *engine.World, dt float64) {
	c.total += uint64(len(w.Contacts()))
}
