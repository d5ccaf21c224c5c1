package engine

import (
	"sort"

	"github.com/lixenwraith/kinetic/asset"
	"github.com/lixenwraith/kinetic/vmath"
)

// RenderItem is one drawable: an entity carrying both a Transform and a
// visible MeshInstance at the time of the RenderSync phase
type RenderItem struct {
	Entity Entity
	World  vmath.Mat4
	Mesh   asset.MeshRef
}

// CameraView is the active viewpoint included in each frame snapshot
type CameraView struct {
	Entity     Entity
	World      vmath.Mat4 // Camera placement; collaborator derives the view
	Projection vmath.Mat4
}

// RenderFrame is the per-frame snapshot handed to the rendering
// collaborator. The engine knows nothing about draw calls; item order is
// not a stability guarantee to external callers.
type RenderFrame struct {
	Number uint64
	Items  []RenderItem
	Camera *CameraView // nil when no camera entity exists
}

// Renderer is the rendering collaborator fed once per frame
type Renderer interface {
	Submit(frame RenderFrame) error
}

// buildRenderFrame joins the transform and mesh stores into a snapshot.
// Items are emitted in mesh-store dense order; the camera is the live
// camera entity with the lowest index so multi-camera setups are stable.
func buildRenderFrame(w *World, number uint64) RenderFrame {
	frame := RenderFrame{Number: number}

	for e, mesh := range w.Meshes.All() {
		if !mesh.Visible || mesh.Mesh.IsZero() {
			continue
		}
		tr, ok := w.Transforms.GetMut(e)
		if !ok {
			continue // Mesh without transform has no place in the world
		}
		frame.Items = append(frame.Items, RenderItem{
			Entity: e,
			World:  tr.World,
			Mesh:   mesh.Mesh,
		})
	}

	cams := w.Cameras.Entities()
	sort.Slice(cams, func(a, b int) bool { return cams[a].Index < cams[b].Index })
	for _, e := range cams {
		tr, ok := w.Transforms.GetMut(e)
		if !ok {
			continue
		}
		cam, _ := w.Cameras.GetMut(e)
		frame.Camera = &CameraView{
			Entity:     e,
			World:      tr.World,
			Projection: cam.Projection(),
		}
		break
	}

	return frame
}
