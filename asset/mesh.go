// Package asset defines the boundary to the mesh/asset collaborator.
// The simulation core never parses asset files; it stores only the opaque
// references handed out by a MeshSource.
package asset

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MeshRef is an opaque, immutable reference to loaded mesh/skeleton data.
// The zero value is "no mesh".
type MeshRef struct {
	ID   uuid.UUID
	Path string
}

// IsZero reports whether the reference points at no mesh
func (r MeshRef) IsZero() bool {
	return r.ID == uuid.Nil
}

func (r MeshRef) String() string {
	if r.IsZero() {
		return "mesh(nil)"
	}
	return fmt.Sprintf("mesh(%s)", r.Path)
}

// MeshSource produces immutable mesh data keyed by asset path
// Implementations own all file I/O and parsing
type MeshSource interface {
	Load(path string) (MeshRef, error)
}

// Catalog is an in-memory MeshSource that hands out stable references
// without touching the filesystem. Reference ids are derived from the path,
// so repeated loads of the same asset compare equal.
type Catalog struct {
	mu   sync.Mutex
	refs map[string]MeshRef
}

// NewCatalog creates an empty mesh catalog
func NewCatalog() *Catalog {
	return &Catalog{refs: make(map[string]MeshRef)}
}

// Load returns the reference for path, creating it on first use
func (c *Catalog) Load(path string) (MeshRef, error) {
	if path == "" {
		return MeshRef{}, fmt.Errorf("asset: empty mesh path")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ref, ok := c.refs[path]; ok {
		return ref, nil
	}
	ref := MeshRef{
		ID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte("asset:"+path)),
		Path: path,
	}
	c.refs[path] = ref
	return ref, nil
}
