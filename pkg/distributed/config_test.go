package distributed_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"periscope/pkg/distributed"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cluster.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "name: staging\nendpoint: https://jobs.example.com\ntoken: s3cret\ntimeout_seconds: 5\n")

	cfg, err := distributed.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "staging" {
		t.Errorf("expected name staging, got %s", cfg.Name)
	}
	if cfg.Endpoint != "https://jobs.example.com" {
		t.Errorf("unexpected endpoint %s", cfg.Endpoint)
	}
	if cfg.Token != "s3cret" {
		t.Errorf("unexpected token %s", cfg.Token)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.Timeout())
	}
}

func TestLoadConfigDefaultTimeout(t *testing.T) {
	path := writeConfig(t, "endpoint: http://localhost:9090\n")

	cfg, err := distributed.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout() != distributed.DefaultTimeout {
		t.Errorf("expected the default timeout, got %s", cfg.Timeout())
	}
}

func TestLoadConfigMissingEndpoint(t *testing.T) {
	path := writeConfig(t, "name: nowhere\n")

	if _, err := distributed.LoadConfig(path); !errors.Is(err, distributed.ErrNoEndpoint) {
		t.Errorf("expected ErrNoEndpoint, got %v", err)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeConfig(t, "endpoint: [broken\n")

	if _, err := distributed.LoadConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := distributed.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestConfigNegativeTimeout(t *testing.T) {
	cfg := distributed.Config{Endpoint: "http://localhost", TimeoutSeconds: -1}

	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a negative timeout")
	}
}
