package engine

// System is gameplay logic executed during the Simulation phase.
// Systems receive the world explicitly and run in priority order on the
// frame goroutine; they must not retain store pointers across frames.
type System interface {
	Update(w *World, dt float64)
	Priority() int // Lower values run first
}
