package configs

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := load()

	if cfg.Server.Port != ":8000" {
		t.Errorf("Default port = %q, want :8000", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 0 {
		t.Errorf("Default allowed origins = %v, want none", cfg.Server.AllowedOrigins)
	}
	if cfg.Canvas.RetentionWindow != 15*time.Minute {
		t.Errorf("Default retention window = %v, want 15m", cfg.Canvas.RetentionWindow)
	}
	if cfg.Canvas.ExpiryPollInterval != time.Second {
		t.Errorf("Default expiry poll interval = %v, want 1s", cfg.Canvas.ExpiryPollInterval)
	}
	if cfg.Canvas.SpawnArea != 320 {
		t.Errorf("Default spawn area = %v, want 320", cfg.Canvas.SpawnArea)
	}
	if cfg.Canvas.SendBufferSize != 256 {
		t.Errorf("Default send buffer size = %d, want 256", cfg.Canvas.SendBufferSize)
	}
	if cfg.Canvas.MaxMessageSize != 1048576 {
		t.Errorf("Default max message size = %d, want 1048576", cfg.Canvas.MaxMessageSize)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("CANVAS_SERVER_PORT", ":9000")
	t.Setenv("CANVAS_CANVAS_RETENTION_WINDOW", "30s")

	cfg := load()
	if cfg.Server.Port != ":9000" {
		t.Errorf("Port = %q, want the environment override :9000", cfg.Server.Port)
	}
	if cfg.Canvas.RetentionWindow != 30*time.Second {
		t.Errorf("Retention window = %v, want the environment override 30s", cfg.Canvas.RetentionWindow)
	}
}
