package engine

import (
	"errors"
	"testing"
)

type health struct {
	HP int
}

func TestStoreInsertGet(t *testing.T) {
	r := NewRegistry()
	s := NewStore[health](r)

	e := r.Create()
	if err := s.Insert(e, health{HP: 10}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, ok := s.Get(e)
	if !ok || got.HP != 10 {
		t.Errorf("Get = %+v, %v; want {10}, true", got, ok)
	}
	if !s.Has(e) {
		t.Error("Has = false for stored component")
	}
}

func TestStoreInsertOverwrites(t *testing.T) {
	r := NewRegistry()
	s := NewStore[health](r)
	e := r.Create()

	_ = s.Insert(e, health{HP: 1})
	_ = s.Insert(e, health{HP: 2})

	if s.Len() != 1 {
		t.Errorf("Len = %d after overwrite, want 1", s.Len())
	}
	got, _ := s.Get(e)
	if got.HP != 2 {
		t.Errorf("HP = %d after overwrite, want 2", got.HP)
	}
}

func TestStoreInsertRejectsDeadEntity(t *testing.T) {
	r := NewRegistry()
	s := NewStore[health](r)

	e := r.Create()
	r.Destroy(e)

	err := s.Insert(e, health{HP: 5})
	if !errors.Is(err, ErrInvalidEntity) {
		t.Errorf("Insert on dead entity: err = %v, want ErrInvalidEntity", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after rejected insert, want 0", s.Len())
	}
}

func TestStoreStaleHandleReadsAbsent(t *testing.T) {
	r := NewRegistry()
	s := NewStore[health](r)

	old := r.Create()
	_ = s.Insert(old, health{HP: 3})
	r.Destroy(old)
	fresh := r.Create() // Reuses the slot

	if _, ok := s.Get(old); ok {
		t.Error("stale handle read a component")
	}
	if s.Has(old) {
		t.Error("stale handle Has = true")
	}
	// The fresh incarnation has no component yet even though the sparse
	// slot still points at the old value
	if _, ok := s.Get(fresh); ok {
		t.Error("fresh entity inherited stale component")
	}
}

func TestStoreRemoveCompacts(t *testing.T) {
	r := NewRegistry()
	s := NewStore[health](r)

	a := r.Create()
	b := r.Create()
	c := r.Create()
	_ = s.Insert(a, health{HP: 1})
	_ = s.Insert(b, health{HP: 2})
	_ = s.Insert(c, health{HP: 3})

	val, ok := s.Remove(a)
	if !ok || val.HP != 1 {
		t.Errorf("Remove = %+v, %v; want {1}, true", val, ok)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d after remove, want 2", s.Len())
	}

	// Swap-remove moved c into a's slot; both survivors still resolve
	if got, _ := s.Get(b); got.HP != 2 {
		t.Errorf("b.HP = %d after compaction, want 2", got.HP)
	}
	if got, _ := s.Get(c); got.HP != 3 {
		t.Errorf("c.HP = %d after compaction, want 3", got.HP)
	}

	if _, ok := s.Remove(a); ok {
		t.Error("second Remove on same entity succeeded")
	}
}

func TestStoreGetMutWritesThrough(t *testing.T) {
	r := NewRegistry()
	s := NewStore[health](r)
	e := r.Create()
	_ = s.Insert(e, health{HP: 1})

	p, ok := s.GetMut(e)
	if !ok {
		t.Fatal("GetMut = false for stored component")
	}
	p.HP = 99

	if got, _ := s.Get(e); got.HP != 99 {
		t.Errorf("HP = %d after GetMut write, want 99", got.HP)
	}
}

func TestStoreIterationExactlyOnce(t *testing.T) {
	r := NewRegistry()
	s := NewStore[health](r)

	var live []Entity
	for i := 0; i < 8; i++ {
		e := r.Create()
		_ = s.Insert(e, health{HP: i})
		live = append(live, e)
	}
	// Churn: remove from the middle, destroy one, add more
	s.Remove(live[3])
	r.Destroy(live[5])
	s.RemoveEntity(live[5])
	e := r.Create()
	_ = s.Insert(e, health{HP: 100})

	seen := make(map[Entity]int)
	for ent := range s.All() {
		seen[ent]++
	}
	if len(seen) != s.Len() {
		t.Errorf("iterated %d distinct entities, store holds %d", len(seen), s.Len())
	}
	for ent, n := range seen {
		if n != 1 {
			t.Errorf("entity %v yielded %d times", ent, n)
		}
	}
}

func TestStoreClear(t *testing.T) {
	r := NewRegistry()
	s := NewStore[health](r)
	e := r.Create()
	_ = s.Insert(e, health{HP: 1})

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", s.Len())
	}
	if s.Has(e) {
		t.Error("Has = true after Clear")
	}
	// The entity itself is untouched
	if !r.IsAlive(e) {
		t.Error("Clear killed the entity")
	}
}

func BenchmarkStoreIterate(b *testing.B) {
	r := NewRegistry()
	s := NewStore[health](r)
	for i := 0; i < 10000; i++ {
		_ = s.Insert(r.Create(), health{HP: i})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sum := 0
		for _, h := range s.All() {
			sum += h.HP
		}
		_ = sum
	}
}
