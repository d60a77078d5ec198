package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL == "" {
			t.Error("expected default API base URL")
		}
		if config.Database.Path == "" {
			t.Error("expected default database path")
		}
		if config.Polling.BaseMS != 5000 {
			t.Errorf("expected default poll base 5000ms, got %d", config.Polling.BaseMS)
		}
		if config.Polling.MaxMS != 60000 {
			t.Errorf("expected default poll cap 60000ms, got %d", config.Polling.MaxMS)
		}
		if config.Generation.StemTimeoutSeconds != 120 {
			t.Errorf("expected default stem timeout 120s, got %d", config.Generation.StemTimeoutSeconds)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("Valid File", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[api]
base_url = "https://studio.example.com"
timeout_seconds = 10

[database]
path = "test.db"
max_open_conns = 2
max_idle_conns = 1
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config fixture: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.API.BaseURL != "https://studio.example.com" {
				t.Errorf("unexpected base URL: %s", config.API.BaseURL)
			}
			if config.Database.MaxOpenConns != 2 {
				t.Errorf("unexpected max open conns: %d", config.Database.MaxOpenConns)
			}
		})

		t.Run("Missing File", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
				t.Error("expected error for missing file")
			}
		})

		t.Run("Malformed File", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			if err := os.WriteFile(path, []byte("[api\nbase_url ="), 0644); err != nil {
				t.Fatalf("failed to write config fixture: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected error for malformed TOML")
			}
		})
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected config file to exist: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file already exists")
		}
	})
}
