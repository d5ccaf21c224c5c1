package component

// AudioEmitter drives sound playback for an entity
// The audio-sync phase diffs emitter state against the previous frame and
// forwards only the deltas to the audio collaborator
type AudioEmitter struct {
	Sound   string  // Collaborator-defined sound identifier
	Playing bool
	Volume  float64 // 0..1
	Loop    bool
}
