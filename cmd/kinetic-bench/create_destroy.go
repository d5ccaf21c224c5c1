package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/kinetic/component"
	"github.com/lixenwraith/kinetic/engine"
)

// newCreateDestroyCmd benchmarks entity churn: every frame creates a batch
// of entities with transforms and queues the previous batch for the
// destruction flush, hammering the registry's slot recycling.
func newCreateDestroyCmd(opts *benchOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create-destroy",
		Short: "Entity creation/destruction throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine(opts)
			if err != nil {
				return err
			}
			stop := startProfile(opts.Profile)
			defer stop()

			w := e.World()
			churn := &churnSystem{batch: opts.Entities}
			e.AddSystem(churn)

			return runFrames(e, opts.Frames, "create-destroy", func() string {
				return fmt.Sprintf("  Churned:     %d entities\n  Slots:       %d\n",
					churn.total, w.Registry.Cap())
			})
		},
	}
}

// churnSystem marks last frame's batch for the flush and creates a new one
type churnSystem struct {
	batch int
	live  []engine.Entity
	total uint64
}

func (s *churnSystem) Priority() int { return 0 }

func (s *churnSystem) Update(w *engine.World, dt float64) {
	for _, e := range s.live {
		w.DestroyEntity(e)
	}
	s.live = s.live[:0]

	for i := 0; i < s.batch; i++ {
		e := w.CreateEntity()
		_ = w.Transforms.Insert(e, component.NewTransform())
		s.live = append(s.live, e)
	}
	s.total += uint64(s.batch)
}
