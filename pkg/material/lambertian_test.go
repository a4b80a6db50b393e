package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	random := rand.New(rand.NewSource(42))

	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{
		T:        1.0,
		Point:    core.NewVec3(1, 2, 3),
		Normal:   normal,
		Material: lambertian,
	}

	rays := []core.Ray{
		core.NewRay(core.NewVec3(1, 2, 5), core.NewVec3(0, 0, -1)),
		core.NewRay(core.NewVec3(0, 0, 4), core.NewVec3(1, 2, -1)),
		// Ray arriving from behind the surface still scatters
		core.NewRay(core.NewVec3(1, 2, 0), core.NewVec3(0, 0, 1)),
	}

	for _, ray := range rays {
		for i := 0; i < 200; i++ {
			scatter, didScatter := lambertian.Scatter(ray, hit, random)
			if !didScatter {
				t.Fatal("Lambertian should always scatter")
			}
			if scatter.Attenuation != albedo {
				t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
			}
			if scatter.Scattered.Origin != hit.Point {
				t.Errorf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
			}

			// Direction is normal + point in unit sphere
			offset := scatter.Scattered.Direction.Subtract(normal)
			if offset.Length() > 1.0+1e-12 {
				t.Errorf("Scatter direction %v is outside the unit sphere around the normal", scatter.Scattered.Direction)
			}
		}
	}
}

func TestLambertian_TargetFromUnitSphereSample(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))

	// (0.5, 1.0, 0.5) maps to the unit sphere point (0, 1, 0)
	random := &sequenceRandom{values: []float64{0.5, 1.0, 0.5}}
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	scatter, _ := lambertian.Scatter(ray, hit, random)
	expected := core.NewVec3(0, 2, 0)
	if !vecNear(scatter.Scattered.Direction, expected, 1e-12) {
		t.Errorf("Expected direction %v, got %v", expected, scatter.Scattered.Direction)
	}
}
