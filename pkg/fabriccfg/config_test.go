package fabriccfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := validate(Default()); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestLoadFillsOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fabricreason.yaml")
	data := []byte(`
cpu_pool_size: 16
persistence:
  backend: redis
  redis_addr: localhost:6379
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CPUPoolSize != 16 {
		t.Fatalf("expected overridden cpu_pool_size=16, got %d", cfg.CPUPoolSize)
	}
	if cfg.IOPoolSize != Default().IOPoolSize {
		t.Fatalf("expected default io_pool_size to survive, got %d", cfg.IOPoolSize)
	}
	if cfg.Persistence.Backend != BackendRedis {
		t.Fatalf("expected redis backend, got %q", cfg.Persistence.Backend)
	}
}

func TestLoadRejectsRedisBackendWithoutAddr(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fabricreason.yaml")
	data := []byte("persistence:\n  backend: redis\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for redis backend without an address")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fabricreason.yaml")
	data := []byte("persistence:\n  backend: memcached\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/fabricreason.yaml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
