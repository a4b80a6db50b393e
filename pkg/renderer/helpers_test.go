package renderer

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

var (
	white   = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// MockMaterial implements material.Material for testing
type MockMaterial struct {
	calls     int
	scatterFn func(rayIn core.Ray, hit material.HitRecord, random core.Random) (material.ScatterResult, bool)
}

func (m *MockMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, random core.Random) (material.ScatterResult, bool) {
	m.calls++
	return m.scatterFn(rayIn, hit, random)
}

// MockShape implements geometry.Shape for testing
type MockShape struct {
	hitFn func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}

// MockScene implements Scene for testing
type MockScene struct {
	camera      *geometry.Camera
	shapes      geometry.ShapeList
	topColor    core.Vec3
	bottomColor core.Vec3
}

func (m *MockScene) GetCamera() *geometry.Camera                { return m.camera }
func (m *MockScene) GetShapes() geometry.ShapeList              { return m.shapes }
func (m *MockScene) GetBackgroundColors() (core.Vec3, core.Vec3) { return m.topColor, m.bottomColor }

// newSkyScene creates a scene with the standard sky and the given shapes
func newSkyScene(width, height int, shapes ...geometry.Shape) *MockScene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       width,
		AspectRatio: float64(width) / float64(height),
		VFov:        90,
	})
	return &MockScene{
		camera:      camera,
		shapes:      shapes,
		topColor:    skyBlue,
		bottomColor: white,
	}
}

// newTwoSphereScene is the classic small sphere resting on a huge ground sphere
func newTwoSphereScene(width, height int) *MockScene {
	return newSkyScene(width, height,
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)
}

// skyColor evaluates the sky gradient directly
func skyColor(direction core.Vec3) core.Vec3 {
	unit := direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return white.Multiply(1.0 - t).Add(skyBlue.Multiply(t))
}

func testConfig(width, height int) SamplingConfig {
	return SamplingConfig{
		Width:           width,
		Height:          height,
		SamplesPerPixel: 1,
		MaxDepth:        50,
		NumWorkers:      3,
		Seed:            42,
	}
}
