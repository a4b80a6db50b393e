package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/upload"
	"github.com/df07/go-sphere-tracer/web/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Parse command line flags
	port := flag.Int("port", cfg.Port, "Port to serve on")
	scenesDir := flag.String("scenes", cfg.ScenesDir, "Directory of JSON scene files")
	flag.Parse()

	webServer := server.NewServer(*port, *scenesDir)

	if cfg.UploadEnabled() {
		uploader, err := upload.NewS3Uploader(cfg.S3)
		if err != nil {
			log.Printf("Error configuring uploads: %v", err)
			os.Exit(1)
		}
		webServer.SetUploader(uploader)
		log.Printf("Uploads enabled to bucket %s", cfg.S3.Bucket)
	}

	log.Printf("Sphere Tracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default&width=400", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
