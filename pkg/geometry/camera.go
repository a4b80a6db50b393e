package geometry

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// CameraConfig contains the user-facing camera parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look from)
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction, need not be orthogonal to the view direction
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the plane in perfect focus, 0 = distance to LookAt
}

// Height returns the image height implied by Width and AspectRatio
func (c CameraConfig) Height() int {
	return max(1, int(float64(c.Width)/c.AspectRatio+0.5))
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// Camera generates rays for rendering. It is immutable after construction.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	halfHeight := math.Tan(config.VFov * math.Pi / 360.0)
	halfWidth := config.AspectRatio * halfHeight

	// Camera coordinate system
	w := config.Center.Subtract(config.LookAt).Normalize() // Points away from the scene
	u := config.Up.Cross(w).Normalize()                    // Right
	v := w.Cross(u)                                        // Up

	origin := config.Center
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth * focusDistance)).
		Subtract(v.Multiply(halfHeight * focusDistance)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth * focusDistance),
		vertical:        v.Multiply(2 * halfHeight * focusDistance),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for image plane coordinates (s, t) where 0 <= s,t <= 1,
// with t = 0 at the bottom of the image. The random source is only used when the
// camera has a lens aperture.
func (c *Camera) GetRay(s, t float64, random core.Random) core.Ray {
	offset := core.Vec3{}
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Basis returns the camera's orthonormal basis vectors (right, up, backward)
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}
