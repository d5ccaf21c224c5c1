package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/lixenwraith/kinetic/engine"
)

// newEngine builds an engine from the shared options
func newEngine(opts *benchOptions) (*engine.Engine, error) {
	cfg := engine.DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		cfg, err = engine.LoadConfigFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
	}
	cfg.Collision.Workers = opts.Workers

	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}

	return engine.New(cfg, engine.WithLogger(log))
}

// startProfile begins profiling per the --profile flag; the returned stop
// function is a no-op when profiling is off
func startProfile(mode string) func() {
	switch mode {
	case "cpu":
		p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		return p.Stop
	case "mem":
		p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
		return p.Stop
	}
	return func() {}
}

// runFrames steps the engine the requested number of times, timing each
// frame, and prints the totals in one place so all workloads report alike
func runFrames(e *engine.Engine, frames int, label string, extra func() string) error {
	var worst time.Duration
	start := time.Now()

	for i := 0; i < frames; i++ {
		frameStart := time.Now()
		if err := e.Step(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if d := time.Since(frameStart); d > worst {
			worst = d
		}
	}

	elapsed := time.Since(start)

	fmt.Printf("Benchmark: %s\n", label)
	fmt.Printf("  Frames:      %d\n", frames)
	fmt.Printf("  Total Time:  %v\n", elapsed)
	fmt.Printf("  Avg Frame:   %v\n", elapsed/time.Duration(frames))
	fmt.Printf("  Worst Frame: %v\n", worst)
	fmt.Printf("  Avg FPS:     %.2f\n", float64(frames)/elapsed.Seconds())
	if extra != nil {
		fmt.Print(extra())
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("  Total Alloc: %d bytes\n", m.TotalAlloc)
	fmt.Printf("  Mallocs:     %d\n", m.Mallocs)
	return nil
}
