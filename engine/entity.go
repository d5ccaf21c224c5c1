package engine

import (
	"math"
)

// Entity is a generational handle naming a simulation object.
// Index addresses a registry slot; Generation detects reuse of that slot.
// A handle with a stale generation never resolves to live data.
type Entity struct {
	Index      uint32
	Generation uint32
}

// slot is the registry-internal record backing one entity index
type slot struct {
	generation uint32
	alive      bool
}

// Registry allocates and recycles entity handles.
// Free slots are reused LIFO: the most recently freed index is handed out
// first, which keeps hot slots dense during create/destroy churn.
type Registry struct {
	slots []slot
	free  []uint32
}

// NewRegistry creates an empty entity registry
func NewRegistry() *Registry {
	return &Registry{
		slots: make([]slot, 0, 256),
		free:  make([]uint32, 0, 64),
	}
}

// Create allocates a new entity handle. Never fails; backing storage grows
// on demand and recycled slots carry a bumped generation.
func (r *Registry) Create() Entity {
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		r.slots[idx].alive = true
		return Entity{Index: idx, Generation: r.slots[idx].generation}
	}

	idx := uint32(len(r.slots))
	r.slots = append(r.slots, slot{alive: true})
	return Entity{Index: idx}
}

// IsAlive reports whether the handle refers to a live entity.
// Stale generations and out-of-range indices report false, never an error.
func (r *Registry) IsAlive(e Entity) bool {
	if int(e.Index) >= len(r.slots) {
		return false
	}
	s := r.slots[e.Index]
	return s.alive && s.generation == e.Generation
}

// Destroy invalidates the handle and recycles its slot.
// Destroying a dead or stale handle is a no-op. The slot generation is
// bumped so outstanding handles go stale; at the generation cap the slot is
// retired instead of wrapping, which would resurrect old handles.
func (r *Registry) Destroy(e Entity) {
	if !r.IsAlive(e) {
		return
	}

	s := &r.slots[e.Index]
	s.alive = false
	if s.generation == math.MaxUint32 {
		return // Retired: never re-enters the free list
	}
	s.generation++
	r.free = append(r.free, e.Index)
}

// Count returns the number of live entities
func (r *Registry) Count() int {
	n := 0
	for _, s := range r.slots {
		if s.alive {
			n++
		}
	}
	return n
}

// Cap returns the number of allocated slots (live, free and retired)
func (r *Registry) Cap() int {
	return len(r.slots)
}
