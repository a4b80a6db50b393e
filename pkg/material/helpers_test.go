package material

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// fixedRandom always returns the same value
type fixedRandom float64

func (f fixedRandom) Float64() float64 {
	return float64(f)
}

// sequenceRandom replays values in order, wrapping around
type sequenceRandom struct {
	values []float64
	next   int
}

func (s *sequenceRandom) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// noRandom fails the test run if the material draws a random number
type noRandom struct{}

func (noRandom) Float64() float64 {
	panic("random source should not be used")
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}
