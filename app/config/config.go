// Package config loads server configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// Params provides named process-wide parameters. The API key is looked up
// through this interface on every request so it can be rotated without a
// restart.
type Params interface {
	Get(name string) string
}

// EnvParams reads parameters from the process environment on each call.
type EnvParams struct{}

func (EnvParams) Get(name string) string {
	return os.Getenv(name)
}

// StaticParams is a fixed parameter set, used by tests.
type StaticParams map[string]string

func (p StaticParams) Get(name string) string {
	return p[name]
}

// Server holds all server configuration.
type Server struct {
	ListenAddr string
	LogLevel   string

	// Storage backend ("badger" or "s3", default: "badger")
	StorageBackend string
	BadgerPath     string

	S3Endpoint  string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Region    string
	S3UseSSL    bool
}

// Load reads server configuration from environment variables with defaults.
func Load() *Server {
	return &Server{
		ListenAddr:     envOr("LISTEN_ADDR", ":8080"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		StorageBackend: envOr("STORAGE_BACKEND", "badger"),
		BadgerPath:     envOr("BADGER_PATH", "data/badger"),
		S3Endpoint:     envOr("S3_ENDPOINT", "http://localhost:9000"),
		S3Bucket:       envOr("S3_BUCKET", "homebase"),
		S3AccessKey:    envOr("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:    envOr("S3_SECRET_KEY", "minioadmin"),
		S3Region:       envOr("S3_REGION", "us-east-1"),
		S3UseSSL:       envBool("S3_USE_SSL", false),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
