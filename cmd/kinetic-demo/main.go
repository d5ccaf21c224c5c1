// kinetic-demo runs a small bouncing-circles scene on the terminal
// renderer, with collision chimes mixed to a PCM sink. It exists to
// exercise the engine against real rendering and audio collaborators.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lixenwraith/kinetic/audio"
	"github.com/lixenwraith/kinetic/engine"
	"github.com/lixenwraith/kinetic/render"
)

var (
	entities = flag.Int("entities", 64, "number of bouncing circles")
	seed     = flag.Int64("seed", 1, "placement seed")
	scale    = flag.Float64("scale", 4, "world units per terminal column")
	pcmPath  = flag.String("pcm", "", "write audio PCM to this path (e.g. a fifo piped to aplay)")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	log, err := newFileLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	renderer, err := render.NewTerminal(*scale)
	if err != nil {
		return err
	}
	defer renderer.Close()

	var pcm io.Writer = io.Discard
	if *pcmPath != "" {
		f, err := os.OpenFile(*pcmPath, os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("open pcm sink: %w", err)
		}
		defer f.Close()
		pcm = f
	}
	player := audio.NewPlayer(pcm, audio.DefaultConfig())
	player.Start()
	defer player.Stop()

	e, err := engine.New(engine.DefaultConfig(),
		engine.WithLogger(log),
		engine.WithRenderer(renderer),
		engine.WithAudioSink(player),
		engine.WithInput(render.NewScreenInput(renderer.Screen())),
	)
	if err != nil {
		return err
	}

	if err := populate(e); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	e.AddSystem(&bounceSystem{bounds: extent})
	e.AddSystem(newChimeSystem())
	e.AddSystem(&quitSystem{cancel: cancel})

	return e.Run(ctx)
}

// populate spawns the circles with mesh, collider and emitter attached
func populate(e *engine.Engine) error {
	mesh, err := e.LoadMesh("meshes/circle.dae")
	if err != nil {
		return err
	}

	w := e.World()
	spawnCircles(w, *entities, *seed, mesh)
	return nil
}

// newFileLogger logs to a file; tcell owns the terminal while the demo runs
func newFileLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"kinetic-demo.log"}
	cfg.ErrorOutputPaths = []string{"kinetic-demo.log"}
	return cfg.Build()
}
