// Package config loads runtime settings from an optional .env file and the
// process environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-tracer/pkg/upload"
)

// Config holds settings shared by the CLI and the web server
type Config struct {
	Scene     string
	Width     int // 0 = scene default
	Samples   int // 0 = scene default
	Workers   int // 0 = CPU count
	Seed      int64
	OutputDir string
	ScenesDir string
	Port      int
	S3        upload.Config
}

// Load reads envFile when it exists (existing environment variables win)
// and then builds the configuration from the environment
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	cfg := &Config{
		Scene:     getEnv("TRACER_SCENE", "default"),
		OutputDir: getEnv("TRACER_OUTPUT_DIR", "output"),
		ScenesDir: getEnv("TRACER_SCENES_DIR", "scenes"),
		S3: upload.Config{
			Bucket:    os.Getenv("TRACER_S3_BUCKET"),
			Region:    getEnv("TRACER_S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("TRACER_S3_ENDPOINT"),
			AccessKey: os.Getenv("TRACER_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("TRACER_S3_SECRET_KEY"),
			Prefix:    os.Getenv("TRACER_S3_PREFIX"),
		},
	}

	var err error
	if cfg.Width, err = getEnvInt("TRACER_WIDTH", 0); err != nil {
		return nil, err
	}
	if cfg.Samples, err = getEnvInt("TRACER_SAMPLES", 0); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("TRACER_WORKERS", 0); err != nil {
		return nil, err
	}
	if cfg.Port, err = getEnvInt("TRACER_PORT", 8080); err != nil {
		return nil, err
	}
	seed, err := getEnvInt("TRACER_SEED", 42)
	if err != nil {
		return nil, err
	}
	cfg.Seed = int64(seed)

	return cfg, nil
}

// UploadEnabled reports whether an S3 bucket is configured
func (c *Config) UploadEnabled() bool {
	return c.S3.Bucket != ""
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, value)
	}
	return n, nil
}
