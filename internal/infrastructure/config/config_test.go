package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
server:
  host: "127.0.0.1"
  port: 9000
database:
  path: "/tmp/posdesk-test.db"
  wal_mode: true
  busy_timeout: 5
websocket:
  send_buffer: 128
seed:
  admin_pin: "4321"
  sample_catalog: false
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.WebSocket.SendBuffer != 128 {
		t.Errorf("WebSocket.SendBuffer = %d, want 128", cfg.WebSocket.SendBuffer)
	}
	if cfg.Seed.AdminPIN != "4321" {
		t.Errorf("Seed.AdminPIN = %q, want 4321", cfg.Seed.AdminPIN)
	}
	if cfg.Seed.SampleCatalog {
		t.Error("Seed.SampleCatalog = true, want false")
	}

	// Unspecified sections keep their defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("MQTT.Broker.Port = %d, want default 1883", cfg.MQTT.Broker.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "invalid: [yaml: content")); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", "server:\n  port: 99999\n"},
		{"empty database path", "database:\n  path: \"\"\n"},
		{"bad seed pin", "seed:\n  admin_pin: \"12\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() expected validation error, got nil")
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POSDESK_SERVER_PORT", "8123")
	t.Setenv("POSDESK_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("POSDESK_SEED_ADMIN_PIN", "9876")

	cfg, err := Load(writeConfig(t, "server:\n  port: 8000\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8123 {
		t.Errorf("Server.Port = %d, want env override 8123", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Seed.AdminPIN != "9876" {
		t.Errorf("Seed.AdminPIN = %q, want env override 9876", cfg.Seed.AdminPIN)
	}
}

func TestTimeoutHelpers(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Timeouts.Read = 15

	if got := cfg.GetReadTimeout().Seconds(); got != 15 {
		t.Errorf("GetReadTimeout = %vs, want 15s", got)
	}
}
