package infra

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const validConfig = `
app:
  name: trading_go
stream:
  ws_url: wss://example.com/crypto
  queue_size: 256
server:
  addr: ":8080"
logging:
  level: debug
`

func TestLoadConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, validConfig))
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Stream.WSURL != "wss://example.com/crypto" {
			t.Errorf("unexpected ws_url: %s", cfg.Stream.WSURL)
		}
		if cfg.Stream.QueueSize != 256 {
			t.Errorf("unexpected queue_size: %d", cfg.Stream.QueueSize)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("unexpected log level: %s", cfg.Logging.Level)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("rejects non-websocket url", func(t *testing.T) {
		bad := `
stream:
  ws_url: https://example.com
  queue_size: 10
server:
  addr: ":8080"
`
		if _, err := LoadConfig(writeConfig(t, bad)); err == nil {
			t.Error("expected validation error for http url")
		}
	})

	t.Run("rejects non-positive queue size", func(t *testing.T) {
		bad := `
stream:
  ws_url: wss://example.com
  queue_size: 0
server:
  addr: ":8080"
`
		if _, err := LoadConfig(writeConfig(t, bad)); err == nil {
			t.Error("expected validation error for queue size")
		}
	})

	t.Run("environment override", func(t *testing.T) {
		t.Setenv("TRADING_STREAM_WS_URL", "wss://override.example.com")
		cfg, err := LoadConfig(writeConfig(t, validConfig))
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Stream.WSURL != "wss://override.example.com" {
			t.Errorf("env override not applied: %s", cfg.Stream.WSURL)
		}
	})
}
