package config

import (
	"errors"
	"testing"
)

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("EVENTS_DRIVER", "redis")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Fatalf("unexpected secret %q", cfg.Auth.JWTSecret)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("unexpected port %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Events.Driver != "redis" {
		t.Fatalf("unexpected drivers %q %q", cfg.Database.Driver, cfg.Events.Driver)
	}
	if cfg.Events.Kafka.Topic != "blog-events" {
		t.Fatalf("unexpected default topic %q", cfg.Events.Kafka.Topic)
	}
}
