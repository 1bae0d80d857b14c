package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoad_Defaults(t *testing.T) {
	// When
	cfg, err := Load("")

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Addr() != "localhost:8080" {
		t.Errorf("expected Addr=localhost:8080, got %s", cfg.Server.Addr())
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("expected Backend=memory, got %s", cfg.Storage.Backend)
	}
	if cfg.Simulation.Latency != time.Second {
		t.Errorf("expected Latency=1s, got %s", cfg.Simulation.Latency)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected ShutdownTimeout=10s, got %s", cfg.Server.ShutdownTimeout)
	}
}

func TestLoad_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "csr.yaml")
	content := `server:
  host: "0.0.0.0"
  port: 9090
  shutdown_timeout: 3s
storage:
  backend: duckdb
  db_path: /tmp/csr.db
  seed: false
simulation:
  latency: 250ms
log:
  level: debug
  pretty: true`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// When
	cfg, err := Load(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Errorf("expected Addr=0.0.0.0:9090, got %s", cfg.Server.Addr())
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected ShutdownTimeout=3s, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Storage.Backend != BackendDuckDB || cfg.Storage.DbPath != "/tmp/csr.db" || cfg.Storage.Seed {
		t.Errorf("unexpected storage settings: %+v", cfg.Storage)
	}
	if cfg.Simulation.Latency != 250*time.Millisecond {
		t.Errorf("expected Latency=250ms, got %s", cfg.Simulation.Latency)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Pretty {
		t.Errorf("unexpected log settings: %+v", cfg.Log)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "csr.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("CSR_SERVER_PORT", "7070")
	t.Setenv("CSR_SIMULATION_LATENCY", "0s")

	// When
	cfg, err := Load(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected Port=7070, got %d", cfg.Server.Port)
	}
	if cfg.Simulation.Latency != 0 {
		t.Errorf("expected Latency=0, got %s", cfg.Simulation.Latency)
	}
}

func TestLoad_InvalidBackend_ReturnsError(t *testing.T) {
	// Given
	t.Setenv("CSR_STORAGE_BACKEND", "postgres")

	// When
	_, err := Load("")

	// Then
	if err == nil || !strings.Contains(err.Error(), "storage.backend") {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadEnv(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("CSR_LOG_LEVEL=warn\n"), 0o644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("CSR_LOG_LEVEL", "")
	os.Unsetenv("CSR_LOG_LEVEL")

	// When
	if err := LoadEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cfg, err := Load("")

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected Level=warn, got %s", cfg.Log.Level)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogSettings{Level: "warn"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info message should be filtered: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn message missing: %s", buf.String())
	}

	fallback := NewLogger(LogSettings{Level: "loud"}, &buf)
	if fallback.GetLevel() != zerolog.InfoLevel {
		t.Errorf("expected info fallback, got %s", fallback.GetLevel())
	}
}
