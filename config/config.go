package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	gojson "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"hexlify/encoding"
)

const (
	EnvConfigPath = "HEXLIFY_CONFIG"
	EnvLogLevel   = "HEXLIFY_LOG_LEVEL"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config holds the defaults a command starts from. Command-line flags are
// applied on top of it.
type Config struct {
	Decode        bool     `json:"decode" yaml:"decode"`
	IgnoreGarbage bool     `json:"ignore_garbage" yaml:"ignore_garbage"`
	Compression   string   `json:"compression" yaml:"compression"`
	LogLevel      string   `json:"log_level" yaml:"log_level"`
	Listen        string   `json:"listen" yaml:"listen"`
	DecodeAliases []string `json:"decode_aliases" yaml:"decode_aliases"`
}

func Default() *Config {
	return &Config{
		Decode:        false,
		IgnoreGarbage: false,
		Compression:   "plain",
		LogLevel:      "warning",
		Listen:        ":6688",
		DecodeAliases: []string{"unhexlify"},
	}
}

// Load overlays the file at path onto the defaults. The format is picked by
// extension: .yaml and .yml, or .json. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	case ".json":
		dec := gojson.NewDecoder(f)
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	// an empty file keeps the defaults
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath is the per-user config file, hexlify/config.yaml under
// os.UserConfigDir. It is "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hexlify", "config.yaml")
}

// FromEnv loads the file named by HEXLIFY_CONFIG, or DefaultPath when it is
// unset, then applies HEXLIFY_LOG_LEVEL. A missing DefaultPath file leaves
// the defaults in place; a missing HEXLIFY_CONFIG file is an error.
func FromEnv() (*Config, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigPath); path != "" {
		var err error
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	} else if path := DefaultPath(); path != "" {
		loaded, err := Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error applying %s: %w", EnvLogLevel, err)
		}
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !encoding.IsKnown(c.Compression) {
		return fmt.Errorf("compression: unknown encoding: %s", c.Compression)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the parsed log level, falling back to warning.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

func (c *Config) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"decode":         c.Decode,
		"ignore_garbage": c.IgnoreGarbage,
		"compression":    c.Compression,
	}
}
