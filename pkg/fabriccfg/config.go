// Package fabriccfg loads the engine's working-directory configuration:
// worker pool sizes, the service-name length bound, override/suffix table
// paths, and the persistence backend selection.
package fabriccfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backend selects a persist.Store implementation.
type Backend string

const (
	BackendFile  Backend = "file"
	BackendRedis Backend = "redis"
)

// Config is the top-level working-directory configuration document,
// conventionally loaded from fabricreason.yaml.
type Config struct {
	IOPoolSize        int     `yaml:"io_pool_size"`
	CPUPoolSize       int     `yaml:"cpu_pool_size"`
	MaxServiceNameLen int     `yaml:"max_service_name_len"`
	OverrideTablePath string  `yaml:"override_table_path"`
	SuffixTablePath   string  `yaml:"suffix_table_path"`
	Persistence       Persist `yaml:"persistence"`
	LogLevel          string  `yaml:"log_level"`
	LogJSON           bool    `yaml:"log_json"`
}

// Persist configures the persistence backend.
type Persist struct {
	Backend   Backend `yaml:"backend"`
	FilePath  string  `yaml:"file_path"`
	RedisAddr string  `yaml:"redis_addr"`
	RedisDB   int     `yaml:"redis_db"`
	KeyPrefix string  `yaml:"key_prefix"`
}

// Default returns the built-in configuration used when no config file is
// present: a conservative pool size, the file-based persistence backend
// under the working directory, and info-level text logging.
func Default() *Config {
	return &Config{
		IOPoolSize:        8,
		CPUPoolSize:       4,
		MaxServiceNameLen: 64,
		Persistence: Persist{
			Backend:   BackendFile,
			FilePath:  ".fabricreason/snapshot.json",
			KeyPrefix: "fabricreason",
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file, filling any field the file
// omits from Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fabriccfg: reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("fabriccfg: parsing config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("fabriccfg: validating config %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.IOPoolSize <= 0 {
		return fmt.Errorf("io_pool_size must be positive, got %d", cfg.IOPoolSize)
	}
	if cfg.CPUPoolSize <= 0 {
		return fmt.Errorf("cpu_pool_size must be positive, got %d", cfg.CPUPoolSize)
	}
	if cfg.MaxServiceNameLen <= 0 {
		return fmt.Errorf("max_service_name_len must be positive, got %d", cfg.MaxServiceNameLen)
	}
	switch cfg.Persistence.Backend {
	case BackendFile, BackendRedis:
	default:
		return fmt.Errorf("persistence.backend must be %q or %q, got %q", BackendFile, BackendRedis, cfg.Persistence.Backend)
	}
	if cfg.Persistence.Backend == BackendRedis && cfg.Persistence.RedisAddr == "" {
		return fmt.Errorf("persistence.redis_addr is required when backend is %q", BackendRedis)
	}
	return nil
}
