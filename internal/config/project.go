package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the sampl.yaml project configuration.
type Config struct {
	Indent IndentConfig `yaml:"indent"`
	Output OutputConfig `yaml:"output"`
	Cache  CacheConfig  `yaml:"cache"`

	// Dir is the directory containing the config file; relative paths
	// below are resolved against it. Empty for the default config.
	Dir string `yaml:"-"`
}

// IndentConfig holds indentation widths, in spaces, for both renderers.
type IndentConfig struct {
	Pretty int `yaml:"pretty,omitempty"`
	Host   int `yaml:"host,omitempty"`
}

type OutputConfig struct {
	// Dir receives transpiled files.
	Dir string `yaml:"dir,omitempty"`

	// EntryPoint controls generation of a host main function when the
	// root class has an eligible main. Defaults to true.
	EntryPoint *bool `yaml:"entry_point,omitempty"`
}

type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

const (
	DefaultPrettyIndent = 2
	DefaultHostIndent   = 4
	DefaultOutputDir    = "build"
	DefaultCachePath    = ".sampl/cache.db"
)

// Default returns the configuration used when no sampl.yaml is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a sampl.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data, path)
	if err != nil {
		return nil, err
	}
	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// ParseConfig parses sampl.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for sampl.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// Resolve finds and loads the configuration governing dir, falling back to
// the defaults when there is none.
func Resolve(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadConfig(path)
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.Indent.Pretty < 0 || c.Indent.Pretty > 8 {
		return fmt.Errorf("%s: indent.pretty must be between 1 and 8, got %d", path, c.Indent.Pretty)
	}
	if c.Indent.Host < 0 || c.Indent.Host > 8 {
		return fmt.Errorf("%s: indent.host must be between 1 and 8, got %d", path, c.Indent.Host)
	}
	if c.Output.Dir == "/" {
		return fmt.Errorf("%s: output.dir must not be the filesystem root", path)
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.Indent.Pretty == 0 {
		c.Indent.Pretty = DefaultPrettyIndent
	}
	if c.Indent.Host == 0 {
		c.Indent.Host = DefaultHostIndent
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Output.EntryPoint == nil {
		enabled := true
		c.Output.EntryPoint = &enabled
	}
	if c.Cache.Path == "" {
		c.Cache.Path = DefaultCachePath
	}
}

// EmitEntryPoint reports whether a host main function may be generated.
func (c *Config) EmitEntryPoint() bool {
	return c.Output.EntryPoint == nil || *c.Output.EntryPoint
}

// ResolvePath resolves p against the config directory.
func (c *Config) ResolvePath(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Fingerprint identifies the settings that affect generated output.
func (c *Config) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "pretty=%d\x00host=%d\x00entry=%t", c.Indent.Pretty, c.Indent.Host, c.EmitEntryPoint())
	return hex.EncodeToString(h.Sum(nil))[:16]
}
