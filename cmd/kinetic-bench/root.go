package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// benchOptions holds the flags shared by all workloads
type benchOptions struct {
	Entities   int
	Frames     int
	Seed       int64
	Workers    int
	Profile    string // "", "cpu" or "mem"
	ConfigPath string
}

func newRootCmd() *cobra.Command {
	opts := &benchOptions{}

	cmd := &cobra.Command{
		Use:   "kinetic-bench",
		Short: "Benchmark harnesses for the kinetic simulation core",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Profile {
			case "", "cpu", "mem":
			default:
				return fmt.Errorf("invalid profile %q: must be cpu or mem", opts.Profile)
			}
			if opts.Entities <= 0 {
				return fmt.Errorf("entities must be positive, got %d", opts.Entities)
			}
			if opts.Frames <= 0 {
				return fmt.Errorf("frames must be positive, got %d", opts.Frames)
			}
			return nil
		},
	}

	cmd.PersistentFlags().IntVarP(&opts.Entities, "entities", "n", 10000, "number of entities")
	cmd.PersistentFlags().IntVarP(&opts.Frames, "frames", "f", 1000, "number of frames to run")
	cmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 1, "PRNG seed for reproducible placement")
	cmd.PersistentFlags().IntVar(&opts.Workers, "workers", 0, "collision workers (0 = GOMAXPROCS)")
	cmd.PersistentFlags().StringVar(&opts.Profile, "profile", "", "write a cpu or mem profile")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "engine config YAML file")

	cmd.AddCommand(newCreateDestroyCmd(opts))
	cmd.AddCommand(newCircleMovementCmd(opts))
	cmd.AddCommand(newCircleCollisionCmd(opts))

	return cmd
}
