package material

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)

	// AbsorbOnTotalInternalReflection drops rays that cannot refract instead of mirroring them
	AbsorbOnTotalInternalReflection bool
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// NewWater creates a dielectric with the refractive index of water
func NewWater() *Dielectric {
	return NewDielectric(1.3)
}

// NewGlass creates a dielectric with the refractive index of glass
func NewGlass() *Dielectric {
	return NewDielectric(1.5)
}

// NewDiamond creates a dielectric with the refractive index of diamond
func NewDiamond() *Dielectric {
	return NewDielectric(1.8)
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, random core.Random) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	// Ray directions are not unit length
	unitDirection := rayIn.Direction.Normalize()

	// Hit normals always point outward, so a positive dot means the ray is leaving the material
	normal := hit.Normal
	refractionRatio := 1.0 / d.RefractiveIndex
	if unitDirection.Dot(hit.Normal) > 0 {
		normal = hit.Normal.Negate()
		refractionRatio = d.RefractiveIndex
	}

	cosine := normal.Negate().Dot(unitDirection)
	c2 := 1.0 - refractionRatio*refractionRatio*(1.0-cosine*cosine)

	var direction core.Vec3
	switch {
	case c2 <= 0:
		// Total internal reflection: no real refraction solution
		if d.AbsorbOnTotalInternalReflection {
			return ScatterResult{}, false
		}
		direction = reflect(unitDirection, hit.Normal)
	case Reflectance(cosine, d.RefractiveIndex) >= random.Float64():
		direction = reflect(unitDirection, hit.Normal)
	default:
		direction = refractVector(unitDirection, normal, refractionRatio, cosine, c2)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// refractVector bends a unit direction through a surface using Snell's law.
// normal faces the incoming ray and c2 must be positive.
func refractVector(unitDirection, normal core.Vec3, refractionRatio, cosine, c2 float64) core.Vec3 {
	return unitDirection.Multiply(refractionRatio).
		Add(normal.Multiply(refractionRatio*cosine - math.Sqrt(c2)))
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	// Calculate R0 for normal incidence
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
