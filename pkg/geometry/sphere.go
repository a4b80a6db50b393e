package geometry

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere.
// Only the nearer root of the quadratic is considered; a ray starting inside
// the sphere therefore never reports the far wall.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil, false
	}

	root := (-b - math.Sqrt(discriminant)) / (2.0 * a)
	if root < tMin || root > tMax {
		return nil, false
	}

	point := ray.At(root)
	return &material.HitRecord{
		T:        root,
		Point:    point,
		Normal:   point.Subtract(s.Center).Normalize(),
		Material: s.Material,
	}, true
}
