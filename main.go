package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/loaders"
	"github.com/df07/go-sphere-tracer/pkg/preview"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/df07/go-sphere-tracer/pkg/upload"
)

func main() {
	envFile := os.Getenv("TRACER_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse command line flags; defaults come from the environment
	sceneType := flag.String("scene", cfg.Scene, "Scene: 'default', 'materials', 'random-spheres' or 'file:<name>'")
	width := flag.Int("width", cfg.Width, "Image width (0 = scene default)")
	samples := flag.Int("samples", cfg.Samples, "Samples per pixel (0 = scene default)")
	workers := flag.Int("workers", cfg.Workers, "Number of parallel workers (0 = auto-detect CPU count)")
	seed := flag.Int64("seed", cfg.Seed, "Random seed")
	outputDir := flag.String("output", cfg.OutputDir, "Output directory")
	scenesDir := flag.String("scenes", cfg.ScenesDir, "Directory of JSON scene files")
	savePNG := flag.Bool("png", true, "Also save a PNG copy")
	thumbWidth := flag.Int("thumb", 160, "Thumbnail width (0 = no thumbnail)")
	doUpload := flag.Bool("upload", cfg.UploadEnabled(), "Upload the PNG to S3")
	showPreview := flag.Bool("preview", false, "Show the result in the terminal")
	list := flag.Bool("list", false, "List available scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Sphere Tracer")
		fmt.Println("Usage: sphere-tracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.ppm")
		return
	}

	if *list {
		if err := listScenes(*scenesDir); err != nil {
			fmt.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Starting Sphere Tracer...")

	selectedScene, err := createScene(*sceneType, *scenesDir, *seed, *width)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	samplingConfig := renderer.MergeSamplingConfig(selectedScene.SamplingConfig, renderer.SamplingConfig{
		SamplesPerPixel: *samples,
		NumWorkers:      *workers,
	})
	samplingConfig.Seed = *seed

	raytracer := renderer.NewRaytracer(selectedScene, samplingConfig, renderer.NewDefaultLogger())
	buf, stats, err := raytracer.Render(func(band renderer.BandCompletion) {
		fmt.Printf("\rBand %d/%d done", band.BandNumber, band.TotalBands)
		if band.BandNumber == band.TotalBands {
			fmt.Println()
		}
	})
	if err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d pixels, %d samples in %v (%d workers)\n",
		stats.TotalPixels, stats.TotalSamples, stats.Duration, stats.Workers)

	outputs, err := saveOutputs(buf, *outputDir, *sceneType, time.Now(), *savePNG, *thumbWidth)
	if err != nil {
		fmt.Printf("Error saving render: %v\n", err)
		os.Exit(1)
	}
	for _, filename := range outputs {
		fmt.Printf("Render saved as %s\n", filename)
	}

	if *doUpload {
		uploader, err := upload.NewS3Uploader(cfg.S3)
		if err != nil {
			fmt.Printf("Error configuring upload: %v\n", err)
			os.Exit(1)
		}
		key, err := uploadRender(context.Background(), uploader, buf, *sceneType, outputs[0])
		if err != nil {
			fmt.Printf("Error uploading render: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Uploaded %s\n", key)
	}

	if *showPreview {
		status := fmt.Sprintf("%s %dx%d, %d spp, %v | Esc/q to exit",
			*sceneType, buf.Width, buf.Height, samplingConfig.SamplesPerPixel, stats.Duration.Round(time.Millisecond))
		if err := preview.Show(buf, status); err != nil {
			fmt.Printf("Error showing preview: %v\n", err)
			os.Exit(1)
		}
	}
}

// createScene loads a scene by ID and applies a width override
func createScene(sceneType, scenesDir string, seed int64, width int) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene specified")
	}

	// Accept a bare JSON path as well as "file:<name>"
	if strings.HasSuffix(sceneType, ".json") {
		if _, err := os.Stat(sceneType); err != nil {
			return nil, fmt.Errorf("scene file not found: %s", sceneType)
		}
		return scene.LoadSceneFile(sceneType, geometry.CameraConfig{Width: width})
	}

	s, err := scene.Load(sceneType, scenesDir, seed, geometry.CameraConfig{Width: width})
	if errors.Is(err, scene.ErrUnknownScene) {
		return nil, fmt.Errorf("%w (use -list to see available scenes)", err)
	}
	return s, err
}

// saveOutputs writes the PPM and the optional PNG and thumbnail, returning
// the written filenames with the PPM first
func saveOutputs(buf *renderer.PixelBuffer, outputDir, sceneType string, now time.Time, savePNG bool, thumbWidth int) ([]string, error) {
	timestamp := now.Format("20060102_150405")
	base := filepath.Join(outputDir, sceneDirName(sceneType), "render_"+timestamp)

	ppmFile := base + ".ppm"
	if err := loaders.SavePPM(ppmFile, buf); err != nil {
		return nil, err
	}
	outputs := []string{ppmFile}

	if savePNG {
		pngFile := base + ".png"
		if err := loaders.SavePNG(pngFile, buf); err != nil {
			return outputs, err
		}
		outputs = append(outputs, pngFile)
	}

	if thumbWidth > 0 {
		thumbFile := base + "_thumb.png"
		if err := loaders.SaveThumbnail(thumbFile, buf, thumbWidth); err != nil {
			return outputs, err
		}
		outputs = append(outputs, thumbFile)
	}

	return outputs, nil
}

// uploadRender uploads the render as PNG under <scene>/<basename>.png
func uploadRender(ctx context.Context, uploader *upload.S3Uploader, buf *renderer.PixelBuffer, sceneType, ppmFile string) (string, error) {
	var encoded bytes.Buffer
	if err := loaders.EncodePNG(&encoded, buf); err != nil {
		return "", err
	}

	name := strings.TrimSuffix(filepath.Base(ppmFile), ".ppm") + ".png"
	return uploader.Upload(ctx, sceneDirName(sceneType)+"/"+name, encoded.Bytes(), "image/png")
}

// sceneDirName turns a scene ID or path into a directory name
func sceneDirName(sceneType string) string {
	name := strings.TrimPrefix(sceneType, "file:")
	name = strings.TrimSuffix(filepath.Base(name), ".json")
	return name
}

func listScenes(scenesDir string) error {
	response, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("  %-20s %s\n", info.ID, info.Description)
		}
	}
	return nil
}
