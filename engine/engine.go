package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/kinetic/asset"
)

// Engine is the facade owning the world, the frame scheduler and the
// handles to the external collaborators. All engine state lives here;
// construction and teardown are explicit and there are no package-level
// statics.
type Engine struct {
	mu sync.Mutex

	cfg   Config
	world *World
	sched *Scheduler
	log   *zap.Logger

	time   TimeProvider
	meshes asset.MeshSource

	lastTick time.Time
	started  bool
}

// Option configures an Engine during construction
type Option func(*Engine)

// WithLogger sets the structured logger (default: no-op)
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithTimeProvider sets the timing collaborator (default: monotonic clock)
func WithTimeProvider(tp TimeProvider) Option {
	return func(e *Engine) { e.time = tp }
}

// WithMeshSource sets the mesh/asset collaborator (default: in-memory catalog)
func WithMeshSource(src asset.MeshSource) Option {
	return func(e *Engine) { e.meshes = src }
}

// WithRenderer wires the rendering collaborator
func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.sched.SetRenderer(r) }
}

// WithAudioSink wires the audio collaborator
func WithAudioSink(a AudioSink) Option {
	return func(e *Engine) { e.sched.SetAudioSink(a) }
}

// WithInput wires the input collaborator
func WithInput(src InputSource) Option {
	return func(e *Engine) { e.sched.SetInput(src) }
}

// New creates an engine with the given configuration
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:   cfg,
		world: NewWorld(),
		log:   zap.NewNop(),
	}
	e.sched = NewScheduler(e.world, cfg.Collision, e.log)

	for _, opt := range opts {
		opt(e)
	}
	e.sched.log = e.log
	if e.time == nil {
		e.time = NewMonotonicTimeProvider()
	}
	if e.meshes == nil {
		e.meshes = asset.NewCatalog()
	}

	return e, nil
}

// World exposes the entity registry and component stores.
// Store iteration order is not a stability guarantee to external callers.
func (e *Engine) World() *World {
	return e.world
}

// Config returns the active configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// CreateEntity allocates a new entity
func (e *Engine) CreateEntity() Entity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.CreateEntity()
}

// DestroyEntity queues an entity for the end-of-frame destruction flush
func (e *Engine) DestroyEntity(ent Entity) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.world.DestroyEntity(ent)
}

// AddSystem registers a simulation-phase system
func (e *Engine) AddSystem(sys System) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sched.AddSystem(sys)
}

// SetParent places child under parent in the scene graph
func (e *Engine) SetParent(child, parent Entity) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.Scene.SetParent(child, parent)
}

// ClearParent detaches child from its parent
func (e *Engine) ClearParent(child Entity) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.world.Scene.ClearParent(child)
}

// LoadMesh resolves an asset path through the mesh collaborator
func (e *Engine) LoadMesh(path string) (asset.MeshRef, error) {
	return e.meshes.Load(path)
}

// Frame returns the number of completed frames
func (e *Engine) Frame() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sched.Frame()
}

// Step advances the simulation by one frame. The timing collaborator is
// queried once; the first step runs with dt 0 to establish the baseline.
func (e *Engine) Step() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.time.Now()
	var dt float64
	if e.started {
		dt = now.Sub(e.lastTick).Seconds()
	}
	e.started = true
	e.lastTick = now

	return e.sched.RunFrame(dt)
}

// Run drives the frame loop at the configured tick rate until the context
// is canceled. Cancellation is honored at the next phase boundary; an
// in-progress phase always completes, so no frame is left half-applied.
func (e *Engine) Run(ctx context.Context) error {
	e.sched.stop = func() bool { return ctx.Err() != nil }
	defer func() { e.sched.stop = nil }()

	interval := time.Second / time.Duration(e.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.log.Info("frame loop started",
		zap.Int("tick_rate", e.cfg.TickRate),
		zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			e.log.Info("frame loop stopped", zap.Uint64("frames", e.sched.Frame()))
			return nil
		case <-ticker.C:
			if err := e.Step(); err != nil {
				return fmt.Errorf("engine run: %w", err)
			}
		}
	}
}
