// Package render implements the engine's rendering collaborator. The
// terminal renderer is a debug view: it projects the frame snapshot
// top-down onto a character grid. The engine hands over world transforms
// and opaque mesh references and knows nothing about the drawing below.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/kinetic/engine"
	"github.com/lixenwraith/kinetic/vmath"
)

// TerminalRenderer draws frame snapshots on a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	scale  float64 // World units per terminal column
	owned  bool    // Whether Close should Fini the screen
}

// NewTerminal creates a renderer on a fresh terminal screen
func NewTerminal(scale float64) (*TerminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("render: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("render: init screen: %w", err)
	}
	r := NewWithScreen(screen, scale)
	r.owned = true
	return r, nil
}

// NewWithScreen wraps an existing screen; useful for tests with
// tcell's simulation screen
func NewWithScreen(screen tcell.Screen, scale float64) *TerminalRenderer {
	if scale <= 0 {
		scale = 1
	}
	return &TerminalRenderer{screen: screen, scale: scale}
}

// Submit implements engine.Renderer
func (r *TerminalRenderer) Submit(frame engine.RenderFrame) error {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w == 0 || h == 0 {
		return nil
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for _, item := range frame.Items {
		col, row := r.project(vmath.M4Translation(item.World), w, h)
		if col < 0 || col >= w || row < 0 || row >= h {
			continue
		}
		r.screen.SetContent(col, row, 'o', nil, style)
	}

	hud := fmt.Sprintf(" frame %d  drawables %d ", frame.Number, len(frame.Items))
	hudStyle := tcell.StyleDefault.Reverse(true)
	for i, ch := range hud {
		if i >= w {
			break
		}
		r.screen.SetContent(i, 0, ch, nil, hudStyle)
	}

	r.screen.Show()
	return nil
}

// project maps a world position to screen cells, origin centered.
// Rows count half as much as columns to offset the cell aspect ratio.
func (r *TerminalRenderer) project(pos vmath.Vec3, w, h int) (col, row int) {
	col = w/2 + int(pos.X/r.scale)
	row = h/2 - int(pos.Y/(r.scale*2))
	return col, row
}

// Screen exposes the underlying screen, e.g. for wiring a ScreenInput
func (r *TerminalRenderer) Screen() tcell.Screen {
	return r.screen
}

// Close releases the terminal if this renderer owns it
func (r *TerminalRenderer) Close() {
	if r.owned {
		r.screen.Fini()
	}
}
