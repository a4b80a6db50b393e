package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene ID matches no built-in scene or file
var ErrUnknownScene = errors.New("unknown scene")

const (
	builtInGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
	filePrefix   = "file:"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// builtInScenes lists the scenes constructed in code
var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		Name:        "Default Scene",
		Description: "Diffuse sphere resting on a ground sphere",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "materials",
		Name:        "Materials",
		Description: "Glass, diffuse and metal spheres side by side",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "random-spheres",
		Name:        "Random Spheres",
		Description: "Field of small random spheres around three large ones",
		Group:       builtInGroup,
		Type:        "builtin",
	},
}

// BuiltInScenes returns the scenes constructed in code
func BuiltInScenes() []SceneInfo {
	return append([]SceneInfo(nil), builtInScenes...)
}

// ListSceneFiles scans scenesDir for *.json scene files. A missing directory
// yields an empty list.
func ListSceneFiles(scenesDir string) ([]SceneInfo, error) {
	if _, err := os.Stat(scenesDir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a JSON scene
// file, falling back to values derived from the filename
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       filePrefix + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    fileGroup,
		Type:     "file",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, err
	}
	sf, err := ParseSceneFile(data)
	if err != nil {
		return sceneInfo, err
	}

	if sf.Name != "" {
		sceneInfo.Name = sf.Name
	}
	if sf.Group != "" {
		sceneInfo.Group = sf.Group
	}
	sceneInfo.Description = sf.Description

	return sceneInfo, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes(scenesDir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(scenesDir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(BuiltInScenes(), fileScenes...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Create ordered groups (Built-in first, then alphabetical)
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtInGroup,
		Scenes: groupMap[builtInGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// Load creates the scene with the given ID. Built-in scenes are addressed by
// name, scene files as "file:<name>" relative to scenesDir. seed drives the
// layout of randomly generated scenes.
func Load(id, scenesDir string, seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	switch id {
	case "default", "basic":
		return NewDefaultScene(cameraOverrides...), nil
	case "materials":
		return NewMaterialsScene(cameraOverrides...), nil
	case "random-spheres", "random":
		return NewRandomSpheresScene(rand.New(rand.NewSource(seed)), cameraOverrides...), nil
	}

	if name, ok := strings.CutPrefix(id, filePrefix); ok && name != "" {
		path := filepath.Join(scenesDir, filepath.Base(name)+".json")
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownScene, id)
		}
		return LoadSceneFile(path, cameraOverrides...)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownScene, id)
}

// titleCase converts a filename-style string to title case
// e.g., "glass-trio" -> "Glass Trio"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
