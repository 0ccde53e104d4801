package core

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

type LogConfig struct {
	/** @brief Minimum level: debug, info, warn or error. */
	Level string `toml:"level"`
	/** @brief Adds file:line of the caller to every entry. */
	ReportCaller bool `toml:"report_caller"`
}

/** @brief A storage backend the loader reads from. Its name seeds the store identifier. */
type StoreConfig struct {
	Name string `toml:"name"`
}

type TextureConfig struct {
	/** @brief Largest accepted width or height, in pixels. */
	MaxDimension uint32 `toml:"max_dimension"`
	/** @brief Textures are dropped by the next Clear of their cache. */
	AutoRelease bool `toml:"auto_release"`
}

type MeshConfig struct {
	/** @brief Generate face normals when the source data carries none. */
	GenerateNormals bool `toml:"generate_normals"`
	/** @brief Merge identical vertices and rewrite the index buffer. */
	Deduplicate bool `toml:"deduplicate"`
}

/** @brief The configuration for the asset conversion core. */
type Config struct {
	Log     LogConfig     `toml:"log"`
	Stores  []StoreConfig `toml:"stores"`
	Texture TextureConfig `toml:"texture"`
	Mesh    MeshConfig    `toml:"mesh"`
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:        "info",
			ReportCaller: true,
		},
		Texture: TextureConfig{
			MaxDimension: 16384,
		},
		Mesh: MeshConfig{
			GenerateNormals: true,
			Deduplicate:     false,
		},
	}
}

// ParseConfig decodes a TOML document on top of DefaultConfig. Unknown keys
// are rejected so typos do not silently fall back to defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := parseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Texture.MaxDimension == 0 {
		return fmt.Errorf("%w: texture.max_dimension must be > 0", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Stores))
	for _, s := range c.Stores {
		if s.Name == "" {
			return fmt.Errorf("%w: store name is required", ErrInvalidConfig)
		}
		if _, ok := seen[s.Name]; ok {
			return fmt.Errorf("%w: duplicate store '%s'", ErrInvalidConfig, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

// Apply pushes the logging section into the shared logger.
func (c *Config) Apply() error {
	if err := SetLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	SetLogReportCaller(c.Log.ReportCaller)
	LogInfo("Asset core configured with %d store(s).", len(c.Stores))
	return nil
}

func (c *Config) StoreNames() []string {
	names := make([]string, len(c.Stores))
	for i, s := range c.Stores {
		names[i] = s.Name
	}
	return names
}
