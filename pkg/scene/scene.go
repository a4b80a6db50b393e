package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         geometry.ShapeList // Objects in the scene, nearest hit wins
	SamplingConfig renderer.SamplingConfig
	TopColor       core.Vec3 // Sky color straight up
	BottomColor    core.Vec3 // Sky color straight down
}

// Default sky gradient
var (
	defaultTopColor    = core.NewVec3(0.5, 0.7, 1.0)
	defaultBottomColor = core.NewVec3(1.0, 1.0, 1.0)
)

// newScene builds an empty scene around a camera configuration. The sampling
// configuration takes its image size from the camera.
func newScene(cameraConfig geometry.CameraConfig, samplingConfig renderer.SamplingConfig) *Scene {
	samplingConfig.Width = cameraConfig.Width
	samplingConfig.Height = cameraConfig.Height()

	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Shapes:         make(geometry.ShapeList, 0),
		SamplingConfig: samplingConfig,
		TopColor:       defaultTopColor,
		BottomColor:    defaultBottomColor,
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.Shapes = append(s.Shapes, geometry.NewSphere(center, radius, mat))
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetShapes returns the shapes to intersect
func (s *Scene) GetShapes() geometry.ShapeList {
	return s.Shapes
}

// GetSamplingConfig returns the scene's sampling configuration
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.SamplingConfig
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// Resize changes the output image size and rebuilds the camera to match.
// A zero height keeps the camera's aspect ratio; a zero width keeps the
// current width.
func (s *Scene) Resize(width, height int) {
	if width <= 0 {
		width = s.CameraConfig.Width
	}
	s.CameraConfig.Width = width
	if height > 0 {
		s.CameraConfig.AspectRatio = float64(width) / float64(height)
	}
	s.Camera = geometry.NewCamera(s.CameraConfig)
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = s.CameraConfig.Height()
}
