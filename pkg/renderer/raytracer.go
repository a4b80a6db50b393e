package renderer

import (
	"fmt"
	"math"
	"runtime"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// hitEpsilon keeps scattered rays from re-hitting the surface they left
const hitEpsilon = 1e-4

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width
	Height          int   // Image height
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed for the per-band random sources
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 50,
		MaxDepth:        50,
		NumWorkers:      0,
		Seed:            42,
	}
}

// MergeSamplingConfig returns base with every non-zero field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.NumWorkers != 0 {
		result.NumWorkers = override.NumWorkers
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	return result
}

// Validate rejects configurations that cannot produce an image
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count cannot be negative, got %d", c.NumWorkers)
	}
	return nil
}

// workers resolves the effective worker count
func (c SamplingConfig) workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	GetShapes() geometry.ShapeList
}

// Raytracer resolves ray colors for a scene. It holds no mutable state and
// is shared by every worker of a render.
type Raytracer struct {
	scene  Scene
	config SamplingConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	topColor, bottomColor := rt.scene.GetBackgroundColors()

	// Normalize the ray direction to get consistent results
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Lerp(topColor, t)
}

// RayColor returns the color carried back along a ray. depth counts the
// bounces taken so far, starting at 0 for camera rays.
func (rt *Raytracer) RayColor(r core.Ray, random core.Random, depth int) core.Vec3 {
	hit, isHit := rt.scene.GetShapes().Hit(r, hitEpsilon, math.Inf(1))
	if !isHit {
		return rt.backgroundGradient(r)
	}

	// Out of bounce budget: the path is cut off, not absorbed
	if depth >= rt.config.MaxDepth {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, random)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, random, depth+1))
}

// SamplePixel averages SamplesPerPixel jittered rays through pixel (x, y),
// where y counts rows from the bottom of the image
func (rt *Raytracer) SamplePixel(camera *geometry.Camera, x, y int, random core.Random) core.Vec3 {
	width := float64(rt.config.Width)
	height := float64(rt.config.Height)

	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		// Convert pixel coordinates to normalized coordinates with jitter
		s := (float64(x) + random.Float64()) / width
		t := (float64(y) + random.Float64()) / height

		ray := camera.GetRay(s, t, random)
		colorAccum = colorAccum.Add(rt.RayColor(ray, random, 0))
	}

	return colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))
}

// vec3ToRGB converts a linear color to 8-bit channels with gamma 2 correction
func vec3ToRGB(colorVec core.Vec3) [3]uint8 {
	colorVec = colorVec.Sqrt().Clamp(0.0, 1.0)

	return [3]uint8{
		uint8(math.Round(255 * colorVec.X)),
		uint8(math.Round(255 * colorVec.Y)),
		uint8(math.Round(255 * colorVec.Z)),
	}
}
