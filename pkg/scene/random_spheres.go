package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Random sphere field layout
const (
	gridMin         = -10
	gridMax         = 10
	smallRadius     = 0.2
	clearanceRadius = 0.9 // Keep small spheres away from the metal feature sphere
)

// NewRandomSpheresScene creates the random sphere field: a ground sphere,
// three large feature spheres and a grid of small spheres with randomly
// chosen materials. The layout depends only on the given random source.
func NewRandomSpheresScene(random core.Random, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(11, 1.8, 3.5),
		LookAt:        core.NewVec3(-1, 0.5, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         2000,
		AspectRatio:   2.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 0.0, // Focus on LookAt
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 10

	s := newScene(cameraConfig, samplingConfig)

	// Ground
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	// Feature spheres
	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewGlass())
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	clearanceCenter := core.NewVec3(4, smallRadius, 0)
	for a := gridMin; a < gridMax; a++ {
		for b := gridMin; b < gridMax; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				smallRadius,
				float64(b)+0.9*random.Float64(),
			)

			if center.Subtract(clearanceCenter).Length() <= clearanceRadius {
				continue
			}

			s.AddSphere(center, smallRadius, randomMaterial(chooseMaterial, random))
		}
	}

	return s
}

// randomMaterial picks diffuse 80%, metal 15% and glass 5% of the time
func randomMaterial(choice float64, random core.Random) material.Material {
	switch {
	case choice < 0.8:
		albedo := core.NewVec3(
			random.Float64()*random.Float64(),
			random.Float64()*random.Float64(),
			random.Float64()*random.Float64(),
		)
		return material.NewLambertian(albedo)
	case choice < 0.95:
		albedo := core.NewVec3(
			0.5*(1+random.Float64()),
			0.5*(1+random.Float64()),
			0.5*(1+random.Float64()),
		)
		return material.NewMetal(albedo, 0.5*random.Float64())
	default:
		return material.NewGlass()
	}
}
