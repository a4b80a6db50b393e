package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Material interface for surfaces that can scatter rays.
// Implementations are read-only after construction and shared across render workers.
type Material interface {
	// Scatter returns the outgoing ray and its attenuation, or false if the ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, random core.Random) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Per-channel color multiplier in [0,1]
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Outward unit normal, even when the ray starts inside the object
	Material Material  // Material of the hit object
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
