package engine

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/kinetic/component"
	"github.com/lixenwraith/kinetic/vmath"
)

// parentLink is one arena slot of the hierarchy, indexed by child entity index
type parentLink struct {
	parent Entity
	valid  bool
}

// SceneGraph maintains parent back-references between entities and derives
// world transforms from them. Links are relations only: a parent does not
// own its children, and traversal is array-indexed rather than
// pointer-chasing so deep hierarchies cannot exhaust the stack.
type SceneGraph struct {
	reg   *Registry
	links []parentLink
}

// NewSceneGraph creates a scene graph bound to the given registry
func NewSceneGraph(reg *Registry) *SceneGraph {
	return &SceneGraph{
		reg:   reg,
		links: make([]parentLink, 0, 256),
	}
}

// SetParent attaches child under parent. Fails with ErrCyclicParent if the
// assignment would make child one of its own ancestors, leaving the graph
// unchanged. Both handles must be live.
func (g *SceneGraph) SetParent(child, parent Entity) error {
	if !g.reg.IsAlive(child) || !g.reg.IsAlive(parent) {
		return fmt.Errorf("set parent: %w", ErrInvalidEntity)
	}
	if child == parent {
		return fmt.Errorf("set parent: %w (self)", ErrCyclicParent)
	}

	// Walk the ancestor chain of the proposed parent
	for cur, ok := parent, true; ok; cur, ok = g.Parent(cur) {
		if cur == child {
			return fmt.Errorf("set parent: %w", ErrCyclicParent)
		}
	}

	g.ensure(child.Index)
	g.links[child.Index] = parentLink{parent: parent, valid: true}
	return nil
}

// ClearParent detaches child, making it a scene root. No-op for handles
// that are dead or already unparented.
func (g *SceneGraph) ClearParent(child Entity) {
	if int(child.Index) < len(g.links) && g.reg.IsAlive(child) {
		g.links[child.Index] = parentLink{}
	}
}

// Parent returns the live parent of child, if any.
// A link whose parent has died reads as absent.
func (g *SceneGraph) Parent(child Entity) (Entity, bool) {
	if int(child.Index) >= len(g.links) {
		return Entity{}, false
	}
	l := g.links[child.Index]
	if !l.valid || !g.reg.IsAlive(l.parent) {
		return Entity{}, false
	}
	return l.parent, true
}

// UpdateWorldTransforms recomputes every world matrix as parent.World *
// local in a single depth-ordered pass: roots first, then each deeper row,
// so a parent is always fresh before its children. Entities without a
// Transform contribute identity and break the chain for their descendants.
// Cost is O(transforms); ancestor depths are memoized per pass.
func (g *SceneGraph) UpdateWorldTransforms(transforms *Store[component.Transform]) {
	entities := transforms.Entities()
	if len(entities) == 0 {
		return
	}

	depths := make(map[uint32]int, len(entities))
	order := make([]int, len(entities))
	for i := range order {
		order[i] = i
	}

	// Stable sort by depth keeps dense order inside each row, so the pass
	// is deterministic for identical insertion sequences
	sort.SliceStable(order, func(a, b int) bool {
		return g.depth(entities[order[a]], transforms, depths) <
			g.depth(entities[order[b]], transforms, depths)
	})

	for _, i := range order {
		e := entities[i]
		tr, ok := transforms.GetMut(e)
		if !ok {
			continue
		}

		local := tr.LocalMatrix()
		if p, ok := g.Parent(e); ok {
			if ptr, ok := transforms.GetMut(p); ok {
				tr.World = vmath.M4Mul(ptr.World, local)
				continue
			}
		}
		tr.World = local
	}
}

// depth counts transform-bearing ancestors, memoizing results.
// The chain stops at a missing parent or a parent without a transform.
// Iterative walk: deep hierarchies must not grow the call stack.
func (g *SceneGraph) depth(e Entity, transforms *Store[component.Transform], memo map[uint32]int) int {
	if d, ok := memo[e.Index]; ok {
		return d
	}

	// Climb until a memoized ancestor or a root, remembering the path
	path := []Entity{e}
	base := 0
	cur := e
	for {
		p, ok := g.Parent(cur)
		if !ok || !transforms.Has(p) {
			break
		}
		if d, ok := memo[p.Index]; ok {
			base = d + 1
			break
		}
		path = append(path, p)
		cur = p
	}

	// Unwind: the highest climbed ancestor sits at base depth, each
	// descendant one deeper
	for i := len(path) - 1; i >= 0; i-- {
		memo[path[i].Index] = base + (len(path) - 1 - i)
	}
	return memo[e.Index]
}

// dropDestroyed clears the links of destroyed entities and reparents their
// children to the scene root. Called from the destruction flush, before the
// registry recycles the slots.
func (g *SceneGraph) dropDestroyed(destroyed map[uint32]struct{}) {
	for i := range g.links {
		l := &g.links[i]
		if !l.valid {
			continue
		}
		if _, dead := destroyed[uint32(i)]; dead {
			*l = parentLink{}
			continue
		}
		if _, dead := destroyed[l.parent.Index]; dead {
			*l = parentLink{} // Orphaned: promote to root
		}
	}
}

func (g *SceneGraph) ensure(idx uint32) {
	for int(idx) >= len(g.links) {
		g.links = append(g.links, parentLink{})
	}
}
