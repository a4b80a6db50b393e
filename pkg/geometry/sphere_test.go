package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_NearRoot(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		tMin           float64
		expectHit      bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "hit from outside",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			tMin:           0.001,
			expectHit:      true,
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "non-unit direction scales t",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -4),
			tMin:           0.001,
			expectHit:      true,
			expectedT:      0.5,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:         "far wall is never reported from inside",
			rayOrigin:    core.NewVec3(0, 0, 0),
			rayDirection: core.NewVec3(0, 0, 1),
			tMin:         0.001,
			expectHit:    false,
		},
		{
			name:           "inside with open range reports the near root and outward normal",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			tMin:           math.Inf(-1),
			expectHit:      true,
			expectedT:      -1.0,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, tt.tMin, math.Inf(1))

			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if !vecNear(hit.Normal, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Material != mat {
				t.Error("Hit record should carry the sphere's material")
			}
		})
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Test tMax bound
	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// The near root is outside the range; the far root is not examined
	hit, isHit = sphere.Hit(ray, 1.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Inclusive bounds
	if _, isHit := sphere.Hit(ray, 1.0, 1.0); !isHit {
		t.Error("Expected hit when t equals both bounds")
	}
}

func TestSphere_Hit_NormalIsUnitAndOutward(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	center := core.NewVec3(1, -2, 3)
	radius := 2.5
	sphere := NewSphere(center, radius, nil)

	for i := 0; i < 500; i++ {
		// Aim from a random outside point at a random point inside the sphere
		origin := center.Add(core.RandomInUnitSphere(random).Normalize().Multiply(10))
		target := center.Add(core.RandomInUnitSphere(random).Multiply(radius * 0.9))
		ray := core.NewRay(origin, target.Subtract(origin).Multiply(0.1+random.Float64()*3))

		hit, isHit := sphere.Hit(ray, 0.0001, math.Inf(1))
		if !isHit {
			t.Fatalf("Ray %v aimed inside the sphere missed", ray)
		}

		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Errorf("Normal %v is not unit length", hit.Normal)
		}
		if math.Abs(hit.Point.Subtract(center).Length()-radius) > 1e-9 {
			t.Errorf("Hit point %v is not on the surface", hit.Point)
		}
		radial := hit.Point.Subtract(center).Normalize()
		if !vecNear(hit.Normal, radial, 1e-9) {
			t.Errorf("Normal %v should point away from the center (%v)", hit.Normal, radial)
		}
		if hit.Normal.Dot(ray.Direction) >= 0 {
			t.Errorf("Ray from outside should hit a front face")
		}
	}
}
