package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Random is a uniform random source in [0, 1).
// *rand.Rand satisfies it. Implementations are not shared between render
// workers; each band gets its own.
type Random interface {
	Float64() float64
}
