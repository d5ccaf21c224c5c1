package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/kinetic/component"
	"github.com/lixenwraith/kinetic/vmath"
)

type recordingInput struct {
	trace  *[]string
	events []InputEvent
}

func (r *recordingInput) Poll() []InputEvent {
	*r.trace = append(*r.trace, "input")
	return r.events
}

type recordingSystem struct {
	trace *[]string
	fn    func(w *World, dt float64)
}

func (r *recordingSystem) Priority() int { return 0 }

func (r *recordingSystem) Update(w *World, dt float64) {
	*r.trace = append(*r.trace, "simulation")
	if r.fn != nil {
		r.fn(w, dt)
	}
}

type recordingRenderer struct {
	trace  *[]string
	frames []RenderFrame
}

func (r *recordingRenderer) Submit(f RenderFrame) error {
	*r.trace = append(*r.trace, "render")
	r.frames = append(r.frames, f)
	return nil
}

type recordingSink struct {
	trace  *[]string
	deltas [][]EmitterDelta
}

func (r *recordingSink) Apply(d []EmitterDelta) {
	*r.trace = append(*r.trace, "audio")
	r.deltas = append(r.deltas, d)
}

func TestSchedulerRejectsInvalidTimestep(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(w, DefaultConfig().Collision, nil)

	e := w.CreateEntity()
	_ = w.Transforms.Insert(e, component.NewTransformAt(vmath.V3(1, 0, 0)))
	_ = w.Kinetics.Insert(e, component.Kinetic{Velocity: vmath.V3(100, 0, 0)})

	for _, dt := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := s.RunFrame(dt); !errors.Is(err, ErrInvalidTimestep) {
			t.Errorf("RunFrame(%v): err = %v, want ErrInvalidTimestep", dt, err)
		}
	}

	// The rejected frames touched nothing
	tr, _ := w.Transforms.Get(e)
	if !vmath.V3ApproxEq(tr.Position, vmath.V3(1, 0, 0), 1e-12) {
		t.Errorf("position = %v after rejected frames, want (1,0,0)", tr.Position)
	}
	if s.Frame() != 0 {
		t.Errorf("Frame() = %d after rejected frames, want 0", s.Frame())
	}
}

func TestSchedulerPhaseOrder(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(w, DefaultConfig().Collision, nil)

	var trace []string
	s.SetInput(&recordingInput{trace: &trace})
	s.SetRenderer(&recordingRenderer{trace: &trace})
	sink := &recordingSink{trace: &trace}
	s.SetAudioSink(sink)
	s.AddSystem(&recordingSystem{trace: &trace})

	// A playing emitter so the audio phase has a delta to apply
	e := w.CreateEntity()
	_ = w.Emitters.Insert(e, component.AudioEmitter{Sound: "ping", Playing: true, Volume: 1})

	if err := s.RunFrame(0.016); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}

	want := []string{"input", "simulation", "render", "audio"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
	if s.Frame() != 1 {
		t.Errorf("Frame() = %d, want 1", s.Frame())
	}
}

func TestSchedulerIntegratesKinetics(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(w, DefaultConfig().Collision, nil)

	e := w.CreateEntity()
	_ = w.Transforms.Insert(e, component.NewTransform())
	_ = w.Kinetics.Insert(e, component.Kinetic{Velocity: vmath.V3(10, -4, 0)})

	if err := s.RunFrame(0.5); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}

	tr, _ := w.Transforms.Get(e)
	if !vmath.V3ApproxEq(tr.Position, vmath.V3(5, -2, 0), 1e-12) {
		t.Errorf("position = %v, want (5,-2,0)", tr.Position)
	}
}

func TestSchedulerAppliesDamping(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(w, DefaultConfig().Collision, nil)

	e := w.CreateEntity()
	_ = w.Transforms.Insert(e, component.NewTransform())
	_ = w.Kinetics.Insert(e, component.Kinetic{Velocity: vmath.V3(10, 0, 0), Damping: 1})

	_ = s.RunFrame(0.5)

	k, _ := w.Kinetics.Get(e)
	if !vmath.V3ApproxEq(k.Velocity, vmath.V3(5, 0, 0), 1e-12) {
		t.Errorf("velocity = %v after damping, want (5,0,0)", k.Velocity)
	}

	// Oversized step clamps to zero, never reverses
	_ = s.RunFrame(10)
	k, _ = w.Kinetics.Get(e)
	if !vmath.V3ApproxEq(k.Velocity, vmath.V3Zero(), 1e-12) {
		t.Errorf("velocity = %v after clamped damping, want zero", k.Velocity)
	}
}

func TestSchedulerPublishesContacts(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(w, DefaultConfig().Collision, nil)

	a := w.CreateEntity()
	b := w.CreateEntity()
	_ = w.Transforms.Insert(a, component.NewTransformAt(vmath.V3(0, 0, 0)))
	_ = w.Transforms.Insert(b, component.NewTransformAt(vmath.V3(1.5, 0, 0)))
	_ = w.Colliders.Insert(a, component.NewCircleCollider(1))
	_ = w.Colliders.Insert(b, component.NewCircleCollider(1))

	if err := s.RunFrame(0); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}

	contacts := w.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}
	c := contacts[0]
	if c.A != a || c.B != b {
		t.Errorf("contact pair = (%v, %v), want (%v, %v)", c.A, c.B, a, b)
	}
	if math.Abs(c.Depth-0.5) > 1e-9 {
		t.Errorf("depth = %v, want 0.5", c.Depth)
	}
	if !vmath.V3ApproxEq(c.Normal, vmath.V3(1, 0, 0), 1e-9) {
		t.Errorf("normal = %v, want (1,0,0)", c.Normal)
	}
}

func TestSchedulerSkipsInactiveColliders(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(w, DefaultConfig().Collision, nil)

	a := w.CreateEntity()
	b := w.CreateEntity()
	_ = w.Transforms.Insert(a, component.NewTransform())
	_ = w.Transforms.Insert(b, component.NewTransform())
	_ = w.Colliders.Insert(a, component.NewCircleCollider(1))
	col := component.NewCircleCollider(1)
	col.Active = false
	_ = w.Colliders.Insert(b, col)

	_ = s.RunFrame(0)

	if n := len(w.Contacts()); n != 0 {
		t.Errorf("contacts = %d with inactive collider, want 0", n)
	}
}

func TestSchedulerDestructionOnlyAtFlush(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(w, DefaultConfig().Collision, nil)

	victim := w.CreateEntity()
	_ = w.Transforms.Insert(victim, component.NewTransform())

	var aliveDuringFrame bool
	s.AddSystem(&recordingSystem{trace: new([]string), fn: func(w *World, dt float64) {
		w.DestroyEntity(victim)
		aliveDuringFrame = w.IsAlive(victim)
	}})

	if err := s.RunFrame(0.016); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}

	if !aliveDuringFrame {
		t.Error("entity died inside the frame instead of at the flush")
	}
	if w.IsAlive(victim) {
		t.Error("entity alive after the destruction flush")
	}
}

func TestSchedulerSystemPriorityOrder(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(w, DefaultConfig().Collision, nil)

	var ran []int
	s.AddSystem(prioritySystem{p: 10, ran: &ran})
	s.AddSystem(prioritySystem{p: -5, ran: &ran})
	s.AddSystem(prioritySystem{p: 0, ran: &ran})

	_ = s.RunFrame(0)

	want := []int{-5, 0, 10}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("system order = %v, want %v", ran, want)
		}
	}
}

type prioritySystem struct {
	p   int
	ran *[]int
}

func (s prioritySystem) Priority() int { return s.p }

func (s prioritySystem) Update(w *World, dt float64) {
	*s.ran = append(*s.ran, s.p)
}

func TestSchedulerStopEndsFrameAtBoundary(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(w, DefaultConfig().Collision, nil)

	stopped := false
	s.stop = func() bool { return stopped }
	s.AddSystem(&recordingSystem{trace: new([]string), fn: func(w *World, dt float64) {
		stopped = true
	}})

	victim := w.CreateEntity()
	w.DestroyEntity(victim)

	if err := s.RunFrame(0.016); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}

	// The stop fired after simulation, so the flush never ran
	if !w.IsAlive(victim) {
		t.Error("flush ran past the stop boundary")
	}
	if s.Frame() != 0 {
		t.Errorf("Frame() = %d for an aborted frame, want 0", s.Frame())
	}
}

func TestSchedulerInputEventsVisibleToSystems(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(w, DefaultConfig().Collision, nil)

	var trace []string
	s.SetInput(&recordingInput{trace: &trace, events: []InputEvent{{Code: 7, Pressed: true}}})

	var seen []InputEvent
	s.AddSystem(&recordingSystem{trace: &trace, fn: func(w *World, dt float64) {
		seen = append(seen, w.Inputs()...)
	}})

	_ = s.RunFrame(0.016)

	if len(seen) != 1 || seen[0].Code != 7 || !seen[0].Pressed {
		t.Errorf("systems saw inputs %v, want [{7 true 0}]", seen)
	}
}
