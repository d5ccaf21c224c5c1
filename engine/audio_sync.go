package engine

import (
	"sort"

	"github.com/lixenwraith/kinetic/component"
)

// EmitterAction classifies an audio state change since the previous frame
type EmitterAction uint8

const (
	EmitterStart EmitterAction = iota
	EmitterStop
	EmitterVolume
)

func (a EmitterAction) String() string {
	switch a {
	case EmitterStart:
		return "start"
	case EmitterStop:
		return "stop"
	case EmitterVolume:
		return "volume"
	}
	return "unknown"
}

// EmitterDelta is one audio state change delivered to the audio
// collaborator. The engine sends deltas, never absolute device state.
type EmitterDelta struct {
	Entity Entity
	Sound  string
	Action EmitterAction
	Volume float64
	Loop   bool
}

// AudioSink is the audio collaborator; it owns device buffers and mixing
type AudioSink interface {
	Apply(deltas []EmitterDelta)
}

// emitterDiff tracks last-frame emitter state and produces per-frame deltas
type emitterDiff struct {
	prev map[Entity]component.AudioEmitter
}

func newEmitterDiff() *emitterDiff {
	return &emitterDiff{prev: make(map[Entity]component.AudioEmitter)}
}

// step computes the deltas between the previous frame and the current
// emitter store. Live emitters are visited in dense order; emitters that
// vanished (detached or entity destroyed) are stopped in index order, so
// the delta stream is deterministic.
func (d *emitterDiff) step(w *World) []EmitterDelta {
	var deltas []EmitterDelta

	seen := make(map[Entity]struct{}, w.Emitters.Len())
	for e, em := range w.Emitters.All() {
		seen[e] = struct{}{}
		prev, known := d.prev[e]

		switch {
		case em.Playing && (!known || !prev.Playing):
			deltas = append(deltas, EmitterDelta{
				Entity: e, Sound: em.Sound, Action: EmitterStart,
				Volume: em.Volume, Loop: em.Loop,
			})
		case !em.Playing && known && prev.Playing:
			deltas = append(deltas, EmitterDelta{
				Entity: e, Sound: em.Sound, Action: EmitterStop,
			})
		case em.Playing && known && prev.Playing && em.Volume != prev.Volume:
			deltas = append(deltas, EmitterDelta{
				Entity: e, Sound: em.Sound, Action: EmitterVolume,
				Volume: em.Volume,
			})
		}
		d.prev[e] = *em
	}

	// Emitters gone since last frame: stop whatever was playing
	var gone []EmitterDelta
	for e, prev := range d.prev {
		if _, ok := seen[e]; !ok {
			if prev.Playing {
				gone = append(gone, EmitterDelta{Entity: e, Sound: prev.Sound, Action: EmitterStop})
			}
			delete(d.prev, e)
		}
	}
	sort.Slice(gone, func(a, b int) bool { return gone[a].Entity.Index < gone[b].Entity.Index })
	deltas = append(deltas, gone...)

	return deltas
}
