package asset

import (
	"testing"
)

func TestCatalogStableRefs(t *testing.T) {
	c := NewCatalog()

	a, err := c.Load("meshes/ship.dae")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	b, err := c.Load("meshes/ship.dae")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if a != b {
		t.Errorf("same path produced different refs: %v vs %v", a, b)
	}

	other, _ := c.Load("meshes/asteroid.dae")
	if other.ID == a.ID {
		t.Errorf("distinct paths share a ref id")
	}
}

func TestCatalogEmptyPath(t *testing.T) {
	c := NewCatalog()
	if _, err := c.Load(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestMeshRefZero(t *testing.T) {
	var ref MeshRef
	if !ref.IsZero() {
		t.Error("zero value should report IsZero")
	}
	loaded, _ := NewCatalog().Load("meshes/ship.dae")
	if loaded.IsZero() {
		t.Error("loaded ref should not be zero")
	}
}
