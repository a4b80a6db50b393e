package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// NewDefaultScene creates the two-sphere scene: a small diffuse sphere
// resting on a huge ground sphere, seen through a pinhole camera
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   2.0,
		VFov:          90.0,
		Aperture:      0.0, // Pinhole
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	// Apply any overrides using the reusable merge function
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 100

	s := newScene(cameraConfig, samplingConfig)

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	return s
}

// NewMaterialsScene creates a row of three spheres showing each material:
// glass on the left, diffuse in the middle and brushed metal on the right
func NewMaterialsScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(3, 3, 2),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   2.0,
		VFov:          20.0,
		Aperture:      0.2,
		FocusDistance: 0.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 100

	s := newScene(cameraConfig, samplingConfig)

	// Ground
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))

	// Glass with a diamond core
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewGlass())
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.25, material.NewDiamond())

	return s
}
