package config

import (
	"os"
	"strconv"
	"time"
)

// ServiceConfig holds basic service information
type ServiceConfig struct {
	Name    string
	Version string
}

// MetricsConfig holds metrics server configuration
type MetricsConfig struct {
	Port string
}

// NATSConfig holds NATS connection configuration
type NATSConfig struct {
	URL string
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	ServiceName string
}

// HTTPServerConfig holds HTTP server configuration
type HTTPServerConfig struct {
	Addr string
}

// PipelineConfig holds the resource budgets for content imports.
// MaxBytes bounds the fetched body; FetchTimeout bounds the wall clock of a
// single fetch. Both can be overridden per request up to the configured
// ceilings.
type PipelineConfig struct {
	MaxBytes     int64
	FetchTimeout time.Duration
	UserAgent    string
}

// Config holds all configuration for the urlimport service
type Config struct {
	Service  ServiceConfig
	HTTP     HTTPServerConfig
	Pipeline PipelineConfig
	Metrics  MetricsConfig
	NATS     NATSConfig
	Tracing  TracingConfig
}

// Load loads the configuration for the urlimport service
func Load() *Config {
	return &Config{
		Service:  NewServiceConfig("urlimport"),
		HTTP:     NewHTTPServerConfig(":8080"),
		Pipeline: NewPipelineConfig(),
		Metrics:  NewMetricsConfig("9092"),
		NATS:     NewNATSConfig(),
		Tracing:  NewTracingConfig("urlimport"),
	}
}

// Common environment variable parsing functions

// GetEnv gets an environment variable with a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntEnv gets an integer environment variable with a default value
func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetInt64Env gets a 64-bit integer environment variable with a default value
func GetInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetDurationEnv gets a duration environment variable with a default value
func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Configuration builders

// NewServiceConfig creates a ServiceConfig with common defaults
func NewServiceConfig(serviceName string) ServiceConfig {
	return ServiceConfig{
		Name:    GetEnv("SERVICE_NAME", serviceName),
		Version: GetEnv("SERVICE_VERSION", "1.0.0"),
	}
}

// NewHTTPServerConfig creates an HTTPServerConfig with common defaults
func NewHTTPServerConfig(defaultAddr string) HTTPServerConfig {
	return HTTPServerConfig{
		Addr: GetEnv("HTTP_ADDR", defaultAddr),
	}
}

// NewMetricsConfig creates a MetricsConfig with common defaults
func NewMetricsConfig(defaultPort string) MetricsConfig {
	return MetricsConfig{
		Port: GetEnv("METRICS_PORT", defaultPort),
	}
}

// NewNATSConfig creates a NATSConfig with common defaults
func NewNATSConfig() NATSConfig {
	return NATSConfig{
		URL: GetEnv("NATS_URL", "nats://localhost:4222"),
	}
}

// NewTracingConfig creates a TracingConfig with common defaults
func NewTracingConfig(serviceName string) TracingConfig {
	return TracingConfig{
		ServiceName: GetEnv("TRACING_SERVICE_NAME", serviceName),
	}
}

// NewPipelineConfig creates a PipelineConfig with common defaults.
// The 5 MiB / 10 s defaults match the upload workflow contract.
func NewPipelineConfig() PipelineConfig {
	return PipelineConfig{
		MaxBytes:     GetInt64Env("IMPORT_MAX_BYTES", 5<<20),
		FetchTimeout: GetDurationEnv("IMPORT_FETCH_TIMEOUT", 10*time.Second),
		UserAgent:    GetEnv("IMPORT_USER_AGENT", "DebugFlowImporter/1.0"),
	}
}
