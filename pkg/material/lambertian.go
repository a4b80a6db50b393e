package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// Diffuse surfaces always scatter.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, random core.Random) (ScatterResult, bool) {
	target := hit.Point.Add(hit.Normal).Add(core.RandomInUnitSphere(random))
	scattered := core.NewRay(hit.Point, target.Subtract(hit.Point))

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: l.Albedo,
	}, true
}
