package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/houdini-package/internal/domain/houdini"
	"github.com/oshokin/houdini-package/internal/logger"
)

// Config holds defaults shared by the packager commands.
type Config struct {
	// Settings are the default target settings; zero fields fall back to the host.
	Settings houdini.Settings `yaml:"settings"`
	// PackagesDir holds package folders named <name>-<version>; empty means the working directory.
	PackagesDir string `yaml:"packages_dir,omitempty"`
	// Env holds environment overrides, e.g. HOUDINI_INSTALL. The process
	// environment and --env are layered on top by the CLI.
	Env map[string]string `yaml:"env,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for packager settings.
	DefaultConfigFilename = "houdini-packager.yaml"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the permission of written config files.
	DefaultFilePermissions = 0o644
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidLogLevel is returned for unknown log levels.
	errInvalidLogLevel = errors.New("invalid log level")
	// errEmptyEnvKey is returned for env entries without a name.
	errEmptyEnvKey = errors.New("environment override without a name")
)

// Default returns a configuration describing the host.
func Default() *Config {
	return &Config{
		Settings: houdini.HostSettings(),
		LogLevel: DefaultLogLevel,
	}
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks cfg and fills defaults for missing fields.
// A zero OS is allowed and means "the host".
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Settings.OS != 0 {
		if err := cfg.Settings.Validate(); err != nil {
			return err
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%q: %w", cfg.LogLevel, errInvalidLogLevel)
	}

	for key := range cfg.Env {
		if key == "" {
			return errEmptyEnvKey
		}
	}

	return nil
}
