package engine

// InputEvent is one device event delivered to the Input phase.
// The core does not interpret codes; that is gameplay's job.
type InputEvent struct {
	Code    int
	Pressed bool
	Value   float64 // Analog axis value, 0 for buttons
}

// InputSource is the platform input collaborator, polled once per frame.
// Implementations must not block; return nil when no events are pending.
type InputSource interface {
	Poll() []InputEvent
}
