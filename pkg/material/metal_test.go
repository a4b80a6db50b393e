package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMirror(albedo)

	// Ray hitting surface at 45 degrees, with a non-unit direction
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -3, -3))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	// A mirror never draws random numbers
	scatter, didScatter := metal.Scatter(rayIn, hit, noRandom{})
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	if !vecNear(scatter.Scattered.Direction, expected, 1e-10) {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_Absorption(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}

	tests := []struct {
		name     string
		metal    *Metal
		rayIn    core.Ray
		random   core.Random
		scatters bool
	}{
		{
			name:     "grazing ray reflects parallel to surface",
			metal:    NewMirror(core.NewVec3(1, 1, 1)),
			rayIn:    core.NewRay(core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0)),
			random:   noRandom{},
			scatters: false,
		},
		{
			name:  "fuzz pushes reflection below the surface",
			metal: NewMetal(core.NewVec3(1, 1, 1), 1.0),
			rayIn: core.NewRay(core.NewVec3(-1, 0.1, 0), core.NewVec3(1, -0.1, 0)),
			// Unit sphere sample (0, -1, 0)
			random:   &sequenceRandom{values: []float64{0.5, 0.0, 0.5}},
			scatters: false,
		},
		{
			name:  "fuzz keeps reflection above the surface",
			metal: NewMetal(core.NewVec3(1, 1, 1), 0.5),
			rayIn: core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0)),
			// Unit sphere sample (0, -1, 0) scaled to (0, -0.5, 0)
			random:   &sequenceRandom{values: []float64{0.5, 0.0, 0.5}},
			scatters: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scatter, didScatter := tt.metal.Scatter(tt.rayIn, hit, tt.random)
			if didScatter != tt.scatters {
				t.Fatalf("Expected scatters=%t, got %t (direction %v)", tt.scatters, didScatter, scatter.Scattered.Direction)
			}
			if didScatter && scatter.Scattered.Direction.Dot(normal) <= 0 {
				t.Errorf("Scattered ray %v points into the surface", scatter.Scattered.Direction)
			}
		})
	}
}

func TestMetal_FuzzyReflectionsStayAboveSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	random := rand.New(rand.NewSource(42))
	normal := core.NewVec3(0, 1, 0)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	scattered, absorbed := 0, 0
	for i := 0; i < 1000; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, random)
		if !ok {
			absorbed++
			continue
		}
		scattered++
		if scatter.Scattered.Direction.Dot(normal) <= 0 {
			t.Fatalf("Scattered ray %v points into the surface", scatter.Scattered.Direction)
		}
	}

	// At 45 degrees a fuzz of 0.3 can never reach below the surface
	if absorbed != 0 {
		t.Errorf("Expected no absorption at 45 degrees, got %d of %d", absorbed, scattered+absorbed)
	}
}
