package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the full application configuration.
type Config struct {
	ChunkDurationSec   int
	ChunkWorkers       int
	VideoWorkers       int
	MaxRetries         int
	APIRateLimitPerMin int
	RequestTimeout     time.Duration
	MaxChunkSizeMB     float64
	Model              string
	StorePath          string
}

// Default returns a Config with hardcoded defaults matching the original pipeline.
func Default() *Config {
	return &Config{
		ChunkDurationSec:   40,
		ChunkWorkers:       4,
		VideoWorkers:       3,
		MaxRetries:         3,
		APIRateLimitPerMin: 30,
		RequestTimeout:     10 * time.Minute,
		MaxChunkSizeMB:     200,
		Model:              "flash",
		StorePath:          "adclip_brain.db",
	}
}

// Model aliases accepted on the command line.
var modelIDs = map[string]string{
	"pro":   "gemini-3-pro-preview",
	"flash": "gemini-2.0-flash",
}

// ResolveModel maps a model alias to the concrete Gemini model ID.
// Unknown names pass through unchanged so full model IDs also work.
func ResolveModel(name string) string {
	if id, ok := modelIDs[name]; ok {
		return id
	}
	return name
}

// APIKey loads the Gemini API key from the environment, reading a local
// .env file first if one exists.
func APIKey() (string, error) {
	_ = godotenv.Load()

	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("GEMINI_API_KEY not set (checked environment and .env)")
}
