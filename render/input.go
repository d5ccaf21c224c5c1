package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/kinetic/engine"
)

// ScreenInput adapts tcell key events to engine input events. A pump
// goroutine blocks on the screen's event queue; Poll drains whatever
// arrived since the previous frame and never blocks the pipeline.
type ScreenInput struct {
	events chan engine.InputEvent
}

// NewScreenInput starts polling the given screen for key events
func NewScreenInput(screen tcell.Screen) *ScreenInput {
	s := &ScreenInput{events: make(chan engine.InputEvent, 64)}
	go s.loop(screen)
	return s
}

// loop runs until the screen is finalized, which makes PollEvent return nil
func (s *ScreenInput) loop(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}

		code := int(key.Key())
		if key.Key() == tcell.KeyRune {
			code = int(key.Rune())
		}
		select {
		case s.events <- engine.InputEvent{Code: code, Pressed: true, Value: 1}:
		default:
			// A stalled frame loop drops keys rather than blocking the pump
		}
	}
}

// Poll implements engine.InputSource
func (s *ScreenInput) Poll() []engine.InputEvent {
	var out []engine.InputEvent
	for {
		select {
		case e := <-s.events:
			out = append(out, e)
		default:
			return out
		}
	}
}
