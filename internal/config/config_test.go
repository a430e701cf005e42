package config_test

import (
	"errors"
	"testing"

	"github.com/aquagrid/aquagrid/internal/config"
)

func TestLoad_MissingSigningKeyIsFatal(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "")

	_, err := config.Load()
	if err == nil {
		t.Fatal("expected error for missing JWT_SIGNING_KEY")
	}

	var missing *config.MissingVarError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingVarError, got %T", err)
	}
	if missing.Var != "JWT_SIGNING_KEY" {
		t.Errorf("expected JWT_SIGNING_KEY, got %q", missing.Var)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "test-key")
	t.Setenv("APP_PORT", "")
	t.Setenv("APP_ENV", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %q", cfg.Env)
	}
	if cfg.JWTSigningKey != "test-key" {
		t.Errorf("unexpected signing key %q", cfg.JWTSigningKey)
	}
}
