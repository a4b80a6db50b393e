package geometry

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// noRandom fails loudly if a random number is drawn
type noRandom struct{}

func (noRandom) Float64() float64 {
	panic("random source should not be used")
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}
