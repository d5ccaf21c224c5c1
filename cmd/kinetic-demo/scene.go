package main

import (
	"math/rand"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/kinetic/asset"
	"github.com/lixenwraith/kinetic/component"
	"github.com/lixenwraith/kinetic/engine"
	"github.com/lixenwraith/kinetic/vmath"
)

const extent = 40.0 // Half-width of the box the circles bounce in

// spawnCircles fills the world with visible, collidable, audible circles
func spawnCircles(w *engine.World, n int, seed int64, mesh asset.MeshRef) {
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		e := w.CreateEntity()
		pos := vmath.V3(
			(rng.Float64()*2-1)*extent,
			(rng.Float64()*2-1)*extent,
			0,
		)
		_ = w.Transforms.Insert(e, component.NewTransformAt(pos))
		_ = w.Kinetics.Insert(e, component.Kinetic{
			Velocity: vmath.V3(
				(rng.Float64()*2-1)*15,
				(rng.Float64()*2-1)*15,
				0,
			),
		})
		_ = w.Colliders.Insert(e, component.NewCircleCollider(1+rng.Float64()))
		_ = w.Meshes.Insert(e, component.NewMeshInstance(mesh))
		_ = w.Emitters.Insert(e, component.AudioEmitter{
			Sound:  "collision",
			Volume: 0.6,
		})
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

const chimeDuration = 0.2 // seconds an emitter stays on after a contact

// chimeSystem turns emitters on for entities that collided last frame and
// back off once the chime has run its course
type chimeSystem struct {
	ttl map[engine.Entity]float64
}

func newChimeSystem() *chimeSystem {
	return &chimeSystem{ttl: make(map[engine.Entity]float64)}
}

func (s *chimeSystem) Priority() int { return 20 }

func (s *chimeSystem) Update(w *engine.World, dt float64) {
	for e, left := range s.ttl {
		left -= dt
		if left > 0 {
			s.ttl[e] = left
			continue
		}
		delete(s.ttl, e)
		if em, ok := w.Emitters.GetMut(e); ok {
			em.Playing = false
		}
	}

	for _, c := range w.Contacts() {
		s.chime(w, c.A)
		s.chime(w, c.B)
	}
}

func (s *chimeSystem) chime(w *engine.World, e engine.Entity) {
	em, ok := w.Emitters.GetMut(e)
	if !ok {
		return
	}
	em.Playing = true
	s.ttl[e] = chimeDuration
}

// quitSystem cancels the run context on q, Escape or Ctrl-C
type quitSystem struct {
	cancel func()
}

func (s *quitSystem) Priority() int { return -100 }

func (s *quitSystem) Update(w *engine.World, dt float64) {
	for _, ev := range w.Inputs() {
		switch ev.Code {
		case 'q', int(tcell.KeyEscape), int(tcell.KeyCtrlC):
			s.cancel()
		}
	}
}
