// Package config loads process configuration from the environment.
//
// Every value is read once at startup into an explicit Config that is
// passed to collaborators by dependency injection. A missing required
// variable is fatal at startup, never deferred to request time.
package config

import (
	"os"
)

// Config holds application-level configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// Env is the deployment environment (development, staging, production).
	Env string

	// JWTSigningKey signs access tokens. Required.
	JWTSigningKey string

	// OTLPEndpoint is the OpenTelemetry collector endpoint.
	OTLPEndpoint string

	// TelemetryEnabled toggles OTLP export.
	TelemetryEnabled bool
}

// MissingVarError reports a required environment variable that is not set.
type MissingVarError struct {
	Var string
}

func (e *MissingVarError) Error() string {
	return "missing required environment variable " + e.Var
}

// Load reads application configuration from the environment.
func Load() (*Config, error) {
	signingKey, err := Require("JWT_SIGNING_KEY")
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:             GetOrDefault("APP_PORT", "8080"),
		Env:              GetOrDefault("APP_ENV", "development"),
		JWTSigningKey:    signingKey,
		OTLPEndpoint:     GetOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled: os.Getenv("OTEL_ENABLED") == "true",
	}, nil
}

// Require returns the value of a required environment variable, or a
// MissingVarError when it is absent or empty.
func Require(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", &MissingVarError{Var: name}
	}
	return value, nil
}

// GetOrDefault returns the value of an environment variable, or the
// given default when it is absent or empty.
func GetOrDefault(name, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return defaultValue
}
