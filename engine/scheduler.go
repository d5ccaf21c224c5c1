package engine

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/lixenwraith/kinetic/physics"
	"github.com/lixenwraith/kinetic/vmath"
)

// Phase is one ordered stage of the per-frame pipeline.
// Each phase has exclusive access to the stores it touches; no phase ever
// runs concurrently with another. Parallelism, where it exists, lives
// inside a phase (broad-phase buckets) and joins before the phase ends.
type Phase uint8

const (
	PhaseInput Phase = iota
	PhaseSimulation
	PhaseCollision
	PhaseSceneGraph
	PhaseRenderSync
	PhaseAudioSync
	PhaseDestructionFlush
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseSimulation:
		return "simulation"
	case PhaseCollision:
		return "collision"
	case PhaseSceneGraph:
		return "scene-graph"
	case PhaseRenderSync:
		return "render-sync"
	case PhaseAudioSync:
		return "audio-sync"
	case PhaseDestructionFlush:
		return "destruction-flush"
	}
	return "unknown"
}

// Scheduler executes the fixed frame pipeline:
// Input -> Simulation -> Collision -> SceneGraph -> RenderSync ->
// AudioSync -> DestructionFlush. No phase is ever skipped or reordered.
type Scheduler struct {
	world *World
	log   *zap.Logger

	detector physics.Detector
	systems  []System

	// Collaborators; any of them may be nil, in which case the
	// corresponding sync phase degrades to a no-op
	input    InputSource
	renderer Renderer
	audio    AudioSink

	audioDiff *emitterDiff
	frame     uint64

	// stop is consulted between phases; a true result ends the frame at
	// that boundary with every started phase fully applied
	stop func() bool

	// Scratch buffers reused across frames to keep the hot loop allocation-light
	circles []physics.Circle
	byIndex map[uint32]Entity
}

// NewScheduler creates a scheduler over the given world
func NewScheduler(w *World, cfg CollisionConfig, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		world: w,
		log:   log,
		detector: physics.Detector{
			CellSize: cfg.CellSize,
			Workers:  cfg.Workers,
		},
		audioDiff: newEmitterDiff(),
		byIndex:   make(map[uint32]Entity),
	}
}

// SetInput wires the input collaborator
func (s *Scheduler) SetInput(src InputSource) { s.input = src }

// SetRenderer wires the rendering collaborator
func (s *Scheduler) SetRenderer(r Renderer) { s.renderer = r }

// SetAudioSink wires the audio collaborator
func (s *Scheduler) SetAudioSink(a AudioSink) { s.audio = a }

// AddSystem registers a simulation-phase system, kept sorted by priority
func (s *Scheduler) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
	sort.SliceStable(s.systems, func(a, b int) bool {
		return s.systems[a].Priority() < s.systems[b].Priority()
	})
}

// Frame returns the number of completed frames
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// RunFrame executes every phase once with the given timestep in seconds.
// A negative or non-finite dt fails with ErrInvalidTimestep before any
// store is touched: the frame is skipped entirely, never half-applied.
func (s *Scheduler) RunFrame(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("run frame: %w (dt=%v)", ErrInvalidTimestep, dt)
	}

	phases := [phaseCount]func(){
		PhaseInput:            s.runInput,
		PhaseSimulation:       func() { s.runSimulation(dt) },
		PhaseCollision:        s.runCollision,
		PhaseSceneGraph:       func() { s.world.Scene.UpdateWorldTransforms(s.world.Transforms) },
		PhaseRenderSync:       s.runRenderSync,
		PhaseAudioSync:        s.runAudioSync,
		PhaseDestructionFlush: s.runDestructionFlush,
	}

	for _, run := range phases {
		if s.stop != nil && s.stop() {
			return nil
		}
		run()
	}

	s.frame++
	return nil
}

// runInput polls the input collaborator and buffers events for systems
func (s *Scheduler) runInput() {
	s.world.inputs = s.world.inputs[:0]
	if s.input == nil {
		return
	}
	s.world.inputs = append(s.world.inputs, s.input.Poll()...)
}

// runSimulation integrates kinetics and then runs gameplay systems in
// priority order
func (s *Scheduler) runSimulation(dt float64) {
	for e, k := range s.world.Kinetics.All() {
		tr, ok := s.world.Transforms.GetMut(e)
		if !ok {
			// A kinetic without a transform has nothing to move; one
			// malformed entity must not stall the simulation
			s.log.Warn("kinetic entity has no transform, skipping",
				zap.Uint32("index", e.Index),
				zap.Uint32("generation", e.Generation))
			continue
		}
		tr.Position = vmath.V3Add(tr.Position, vmath.V3Scale(k.Velocity, dt))
		if k.Damping > 0 {
			decay := 1 - k.Damping*dt
			if decay < 0 {
				decay = 0
			}
			k.Velocity = vmath.V3Scale(k.Velocity, decay)
		}
	}

	for _, sys := range s.systems {
		sys.Update(s.world, dt)
	}
}

// runCollision joins active colliders with transforms, runs the detector
// and publishes this frame's contacts. Colliders on parented entities are
// positioned by the previous pass's world matrix; roots read their local
// position directly, which is always current.
func (s *Scheduler) runCollision() {
	w := s.world
	s.circles = s.circles[:0]
	clear(s.byIndex)

	for e, col := range w.Colliders.All() {
		if !col.Active {
			continue
		}
		tr, ok := w.Transforms.GetMut(e)
		if !ok {
			s.log.Warn("collider entity has no transform, skipping",
				zap.Uint32("index", e.Index),
				zap.Uint32("generation", e.Generation))
			continue
		}

		base := tr.Position
		if _, parented := w.Scene.Parent(e); parented {
			base = tr.WorldPosition()
		}

		s.circles = append(s.circles, physics.Circle{
			ID:     e.Index,
			Center: vmath.V3Add(base, col.Offset),
			Radius: col.Radius,
		})
		s.byIndex[e.Index] = e
	}

	raw := s.detector.Detect(s.circles)

	w.contacts = w.contacts[:0]
	for _, c := range raw {
		w.contacts = append(w.contacts, Contact{
			A:      s.byIndex[c.A],
			B:      s.byIndex[c.B],
			Point:  c.Point,
			Normal: c.Normal,
			Depth:  c.Depth,
		})
	}
}

// runRenderSync snapshots drawables and feeds the rendering collaborator
func (s *Scheduler) runRenderSync() {
	if s.renderer == nil {
		return
	}
	frame := buildRenderFrame(s.world, s.frame)
	if err := s.renderer.Submit(frame); err != nil {
		// Rendering trouble must not take the simulation down
		s.log.Warn("render submit failed", zap.Error(err))
	}
}

// runAudioSync forwards emitter deltas to the audio collaborator.
// The diff is tracked even without a sink so wiring audio mid-run does
// not replay the entire emitter history.
func (s *Scheduler) runAudioSync() {
	deltas := s.audioDiff.step(s.world)
	if s.audio == nil || len(deltas) == 0 {
		return
	}
	s.audio.Apply(deltas)
}

// runDestructionFlush is the single point per frame where entities and
// their components are actually deallocated
func (s *Scheduler) runDestructionFlush() {
	if n := s.world.Flush(); n > 0 {
		s.log.Debug("destruction flush", zap.Int("entities", n), zap.Uint64("frame", s.frame))
	}
}
