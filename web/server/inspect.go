package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape // The shape that was hit
	Ray       core.Ray
}

// lensCenter stands in for the random source when casting inspection rays;
// it places every lens sample at the lens center
type lensCenter struct{}

func (lensCenter) Float64() float64 { return 0.5 }

// inspectPixel casts a ray through the center of pixel (pixelX, row), where
// row 0 is the top of the image, and returns the nearest object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, row int) InspectResult {
	config := sceneObj.SamplingConfig
	s := (float64(pixelX) + 0.5) / float64(config.Width)
	t := (float64(config.Height-1-row) + 0.5) / float64(config.Height)
	ray := sceneObj.Camera.GetRay(s, t, lensCenter{})

	hit, isHit := sceneObj.Shapes.Hit(ray, 1e-4, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false, Ray: ray}
	}

	// ShapeList does not report which shape was hit; find the first with the same distance
	for _, shape := range sceneObj.Shapes {
		if shapeHit, ok := shape.Hit(ray, 1e-4, hit.T); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Shape: shape, Ray: ray}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit, Ray: ray}
}

// extractMaterialInfo extracts material parameters with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["absorbOnTotalInternalReflection"] = m.AbsorbOnTotalInternalReflection
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts shape parameters
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties
	default:
		return "unknown", properties
	}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// handleInspect reports what the center ray of a pixel hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, status, err := s.createScene(req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	hit := result.HitRecord
	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		FrontFace:    result.Ray.Direction.Dot(hit.Normal) < 0,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
	writeJSON(w, http.StatusOK, response)
}
