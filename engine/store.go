package engine

import (
	"fmt"
	"iter"
)

// AnyStore is the type-erased store surface used for uniform lifecycle
// operations such as the destruction flush
type AnyStore interface {
	RemoveEntity(e Entity) bool
	Has(e Entity) bool
	Len() int
	Clear()
}

const noSlot = int32(-1)

// Store is a dense container for one component kind T, validated against
// the entity registry. Components live in a contiguous array for
// cache-friendly iteration; a sparse table maps entity index to dense slot.
// Iteration order is insertion order until a remove compacts via swap-remove.
type Store[T any] struct {
	reg      *Registry
	dense    []T
	entities []Entity // Parallel to dense: owner of each component
	sparse   []int32  // Entity index -> dense slot, noSlot if absent
}

// NewStore creates a component store bound to the given registry
func NewStore[T any](reg *Registry) *Store[T] {
	return &Store[T]{
		reg:      reg,
		dense:    make([]T, 0, 64),
		entities: make([]Entity, 0, 64),
	}
}

// Insert attaches a component to a live entity, silently overwriting any
// existing value. Returns ErrInvalidEntity for stale or never-created
// handles; this is the one store operation where liveness is a contract.
func (s *Store[T]) Insert(e Entity, val T) error {
	if !s.reg.IsAlive(e) {
		return fmt.Errorf("insert component: %w (index %d gen %d)", ErrInvalidEntity, e.Index, e.Generation)
	}

	s.ensureSparse(e.Index)
	if slot := s.sparse[e.Index]; slot != noSlot {
		s.dense[slot] = val
		s.entities[slot] = e
		return nil
	}

	s.sparse[e.Index] = int32(len(s.dense))
	s.dense = append(s.dense, val)
	s.entities = append(s.entities, e)
	return nil
}

// Get returns a copy of the entity's component.
// Stale and absent handles read as absent, never as an error.
func (s *Store[T]) Get(e Entity) (T, bool) {
	if slot := s.slotOf(e); slot != noSlot {
		return s.dense[slot], true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer into the dense array for in-place mutation.
// The pointer is invalidated by the next Insert or Remove on this store.
func (s *Store[T]) GetMut(e Entity) (*T, bool) {
	if slot := s.slotOf(e); slot != noSlot {
		return &s.dense[slot], true
	}
	return nil, false
}

// Has reports whether the live entity has this component
func (s *Store[T]) Has(e Entity) bool {
	return s.slotOf(e) != noSlot
}

// Remove detaches and returns the entity's component.
// The dense array is compacted by swapping in the last element.
func (s *Store[T]) Remove(e Entity) (T, bool) {
	var zero T
	slot := s.slotOf(e)
	if slot == noSlot {
		return zero, false
	}

	val := s.dense[slot]
	last := int32(len(s.dense) - 1)
	if slot != last {
		s.dense[slot] = s.dense[last]
		s.entities[slot] = s.entities[last]
		s.sparse[s.entities[slot].Index] = slot
	}
	s.dense = s.dense[:last]
	s.entities = s.entities[:last]
	s.sparse[e.Index] = noSlot
	return val, true
}

// RemoveEntity implements AnyStore
func (s *Store[T]) RemoveEntity(e Entity) bool {
	_, ok := s.Remove(e)
	return ok
}

// All yields every live (entity, component) pair in dense order.
// The sequence is restartable; each range starts a fresh pass.
// Inserting or removing on this store during iteration is not supported;
// defer structural changes to the destruction queue.
func (s *Store[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for i := range s.dense {
			if !yield(s.entities[i], &s.dense[i]) {
				return
			}
		}
	}
}

// Entities returns a snapshot of the owning entities in dense order
func (s *Store[T]) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Len returns the number of stored components
func (s *Store[T]) Len() int {
	return len(s.dense)
}

// Clear removes all components without touching the registry
func (s *Store[T]) Clear() {
	s.dense = s.dense[:0]
	s.entities = s.entities[:0]
	for i := range s.sparse {
		s.sparse[i] = noSlot
	}
}

// slotOf resolves the dense slot for a handle, revalidating the generation
// against the registry so stale handles read as absent
func (s *Store[T]) slotOf(e Entity) int32 {
	if int(e.Index) >= len(s.sparse) {
		return noSlot
	}
	slot := s.sparse[e.Index]
	if slot == noSlot {
		return noSlot
	}
	// The slot may hold a component from a previous incarnation of this
	// index if the flush missed it; the generation check closes that hole
	if s.entities[slot].Generation != e.Generation || !s.reg.IsAlive(e) {
		return noSlot
	}
	return slot
}

func (s *Store[T]) ensureSparse(idx uint32) {
	for int(idx) >= len(s.sparse) {
		s.sparse = append(s.sparse, noSlot)
	}
}
