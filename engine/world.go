package engine

import (
	"sort"

	"github.com/lixenwraith/kinetic/component"
)

// World owns the entity registry, one dense store per component kind and
// the scene graph. Systems receive the world explicitly; there is no
// ambient global state.
type World struct {
	Registry *Registry
	Scene    *SceneGraph

	// Component stores, one per kind, all registry-validated
	Transforms *Store[component.Transform]
	Colliders  *Store[component.Collider]
	Kinetics   *Store[component.Kinetic]
	Meshes     *Store[component.MeshInstance]
	Emitters   *Store[component.AudioEmitter]
	Cameras    *Store[component.Camera]

	// Lifecycle registry: every store participates in the destruction flush
	allStores []AnyStore

	// Entities marked for removal this frame, applied only at flush so
	// in-frame iteration never observes a half-destroyed entity
	pendingDestroy map[uint32]Entity

	// Per-frame data, rebuilt each tick
	contacts []Contact
	inputs   []InputEvent
}

// NewWorld creates a world with all component stores initialized
func NewWorld() *World {
	reg := NewRegistry()
	w := &World{
		Registry:       reg,
		Scene:          NewSceneGraph(reg),
		Transforms:     NewStore[component.Transform](reg),
		Colliders:      NewStore[component.Collider](reg),
		Kinetics:       NewStore[component.Kinetic](reg),
		Meshes:         NewStore[component.MeshInstance](reg),
		Emitters:       NewStore[component.AudioEmitter](reg),
		Cameras:        NewStore[component.Camera](reg),
		pendingDestroy: make(map[uint32]Entity),
	}

	w.allStores = []AnyStore{
		w.Transforms,
		w.Colliders,
		w.Kinetics,
		w.Meshes,
		w.Emitters,
		w.Cameras,
	}

	return w
}

// CreateEntity allocates a fresh entity handle
func (w *World) CreateEntity() Entity {
	return w.Registry.Create()
}

// DestroyEntity queues an entity for removal at the end of the frame.
// Marking a dead, stale or already-marked handle is a no-op.
func (w *World) DestroyEntity(e Entity) {
	if !w.Registry.IsAlive(e) {
		return
	}
	w.pendingDestroy[e.Index] = e
}

// IsAlive reports whether the handle refers to a live entity.
// Entities stay alive until the destruction flush even when marked.
func (w *World) IsAlive(e Entity) bool {
	return w.Registry.IsAlive(e)
}

// PendingDestroy reports whether the entity is marked for the next flush
func (w *World) PendingDestroy(e Entity) bool {
	marked, ok := w.pendingDestroy[e.Index]
	return ok && marked == e
}

// Flush applies all queued destructions: children of dying entities are
// reparented to the scene root, components are removed from every store
// and the registry recycles the slots. Runs once per frame, in entity
// index order for reproducibility.
func (w *World) Flush() int {
	if len(w.pendingDestroy) == 0 {
		return 0
	}

	indices := make(map[uint32]struct{}, len(w.pendingDestroy))
	marked := make([]Entity, 0, len(w.pendingDestroy))
	for idx, e := range w.pendingDestroy {
		indices[idx] = struct{}{}
		marked = append(marked, e)
	}
	sort.Slice(marked, func(a, b int) bool { return marked[a].Index < marked[b].Index })

	w.Scene.dropDestroyed(indices)

	for _, e := range marked {
		for _, store := range w.allStores {
			store.RemoveEntity(e)
		}
		w.Registry.Destroy(e)
	}

	n := len(marked)
	clear(w.pendingDestroy)
	return n
}

// Contacts returns the contact events of the current frame.
// The slice is valid until the next Collision phase overwrites it.
func (w *World) Contacts() []Contact {
	return w.contacts
}

// Inputs returns the input events polled at the top of the current frame
func (w *World) Inputs() []InputEvent {
	return w.inputs
}

// Clear removes all entities, components, links and queued work.
// Useful for resets and tests; handles from before the clear are stale.
func (w *World) Clear() {
	live := make([]Entity, 0, w.Registry.Count())
	for idx := range w.Registry.slots {
		s := w.Registry.slots[idx]
		if s.alive {
			live = append(live, Entity{Index: uint32(idx), Generation: s.generation})
		}
	}
	for _, e := range live {
		w.Registry.Destroy(e)
	}
	for _, store := range w.allStores {
		store.Clear()
	}
	w.Scene.links = w.Scene.links[:0]
	clear(w.pendingDestroy)
	w.contacts = w.contacts[:0]
	w.inputs = w.inputs[:0]
}
