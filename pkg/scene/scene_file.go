package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// SceneFile is the JSON description of a sphere scene
type SceneFile struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Group       string         `json:"group,omitempty"`
	Camera      CameraCfg      `json:"camera"`
	Sampling    SamplingCfg    `json:"sampling,omitempty"`
	Background  *BackgroundCfg `json:"background,omitempty"`
	Spheres     []SphereCfg    `json:"spheres"`
}

// CameraCfg mirrors geometry.CameraConfig; zero fields keep the defaults
type CameraCfg struct {
	Center        [3]float64 `json:"center"`
	LookAt        [3]float64 `json:"lookAt"`
	Up            [3]float64 `json:"up,omitempty"`
	Width         int        `json:"width,omitempty"`
	AspectRatio   float64    `json:"aspectRatio,omitempty"`
	VFov          float64    `json:"vfov,omitempty"`
	Aperture      float64    `json:"aperture,omitempty"`
	FocusDistance float64    `json:"focusDistance,omitempty"`
}

type SamplingCfg struct {
	SamplesPerPixel int `json:"samplesPerPixel,omitempty"`
	MaxDepth        int `json:"maxDepth,omitempty"`
}

type BackgroundCfg struct {
	Top    Color `json:"top"`
	Bottom Color `json:"bottom"`
}

type SphereCfg struct {
	Center   [3]float64  `json:"center"`
	Radius   float64     `json:"radius"`
	Material MaterialCfg `json:"material"`
}

// MaterialCfg selects one of the material variants by Type:
// "lambertian" and "metal" use Color (metal also Fuzz), "dielectric" uses
// either a Preset (water, glass, diamond) or an explicit Index.
type MaterialCfg struct {
	Type      string  `json:"type"`
	Color     Color   `json:"color,omitempty"`
	Fuzz      float64 `json:"fuzz,omitempty"`
	Preset    string  `json:"preset,omitempty"`
	Index     float64 `json:"index,omitempty"`
	AbsorbTIR bool    `json:"absorbTIR,omitempty"`
}

// Color is an RGB triple written either as a hex string ("#cc3319") or as
// an array of three numbers in [0, 1]
type Color core.Vec3

// UnmarshalJSON accepts both color notations
func (c *Color) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		parsed, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("invalid color %q: %w", hex, err)
		}
		*c = Color{X: parsed.R, Y: parsed.G, Z: parsed.B}
		return nil
	}

	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be a hex string or [r, g, b]: %w", err)
	}
	*c = Color{X: rgb[0], Y: rgb[1], Z: rgb[2]}
	return nil
}

// Vec3 returns the color as a vector
func (c Color) Vec3() core.Vec3 {
	return core.Vec3(c)
}

func toVec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Build creates the material described by the configuration
func (mc MaterialCfg) Build() (material.Material, error) {
	switch strings.ToLower(mc.Type) {
	case "lambertian", "diffuse":
		return material.NewLambertian(mc.Color.Vec3()), nil
	case "metal":
		if mc.Fuzz < 0 || mc.Fuzz > 1 {
			return nil, fmt.Errorf("metal fuzz must be in [0, 1], got %g", mc.Fuzz)
		}
		return material.NewMetal(mc.Color.Vec3(), mc.Fuzz), nil
	case "dielectric", "glass":
		d, err := mc.buildDielectric()
		if err != nil {
			return nil, err
		}
		d.AbsorbOnTotalInternalReflection = mc.AbsorbTIR
		return d, nil
	default:
		return nil, fmt.Errorf("unknown material type %q", mc.Type)
	}
}

func (mc MaterialCfg) buildDielectric() (*material.Dielectric, error) {
	if mc.Index > 0 {
		return material.NewDielectric(mc.Index), nil
	}
	switch strings.ToLower(mc.Preset) {
	case "water":
		return material.NewWater(), nil
	case "glass", "":
		return material.NewGlass(), nil
	case "diamond":
		return material.NewDiamond(), nil
	default:
		return nil, fmt.Errorf("unknown dielectric preset %q", mc.Preset)
	}
}

// Build validates the sphere and creates it
func (sc SphereCfg) Build() (*geometry.Sphere, error) {
	if sc.Radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be > 0, got %g", sc.Radius)
	}
	mat, err := sc.Material.Build()
	if err != nil {
		return nil, err
	}
	return geometry.NewSphere(toVec3(sc.Center), sc.Radius, mat), nil
}

func (cc CameraCfg) toCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:        toVec3(cc.Center),
		LookAt:        toVec3(cc.LookAt),
		Up:            toVec3(cc.Up),
		Width:         cc.Width,
		AspectRatio:   cc.AspectRatio,
		VFov:          cc.VFov,
		Aperture:      cc.Aperture,
		FocusDistance: cc.FocusDistance,
	}
}

// defaultFileCamera fills fields a scene file leaves out
var defaultFileCamera = geometry.CameraConfig{
	Up:          core.NewVec3(0, 1, 0),
	Width:       400,
	AspectRatio: 2.0,
	VFov:        40.0,
}

// ParseSceneFile decodes a JSON scene description
func ParseSceneFile(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	if len(sf.Spheres) == 0 {
		return nil, fmt.Errorf("scene file has no spheres")
	}
	if sf.Camera.Center == sf.Camera.LookAt {
		return nil, fmt.Errorf("camera center and lookAt must differ")
	}
	return &sf, nil
}

// Build creates a scene from the file description, applying camera overrides
func (sf *SceneFile) Build(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.MergeCameraConfig(defaultFileCamera, sf.Camera.toCameraConfig())
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	samplingConfig := renderer.MergeSamplingConfig(renderer.DefaultSamplingConfig(), renderer.SamplingConfig{
		SamplesPerPixel: sf.Sampling.SamplesPerPixel,
		MaxDepth:        sf.Sampling.MaxDepth,
	})

	s := newScene(cameraConfig, samplingConfig)
	if sf.Background != nil {
		s.TopColor = sf.Background.Top.Vec3()
		s.BottomColor = sf.Background.Bottom.Vec3()
	}

	for i, sc := range sf.Spheres {
		sphere, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.Shapes = append(s.Shapes, sphere)
	}

	return s, nil
}

// LoadSceneFile reads and builds a JSON scene file
func LoadSceneFile(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	sf, err := ParseSceneFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s, err := sf.Build(cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
