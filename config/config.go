// Package config holds the settings shared by every opi command. Values come
// from built-in defaults, then an optional YAML file, then OPI_* environment
// variables; command-line flags are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"opi/system/file"
	"opi/system/mount"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath             = "/etc/opi/config.yaml"
	DefaultBundleRoot       = "/opt/offline-packages"
	DefaultOSRelease        = "/etc/os-release"
	DefaultPython           = "/usr/bin/python3"
	DefaultMountpoint       = mount.DefaultTarget
	DefaultBootstrapPattern = "pip-*.whl"
)

type Config struct {
	BundleRoot       string   `yaml:"bundle_root"`
	OSRelease        string   `yaml:"os_release"`
	Python           string   `yaml:"python"`
	Mountpoint       string   `yaml:"mountpoint"`
	BootstrapPattern string   `yaml:"bootstrap_pattern"`
	SkipRemount      bool     `yaml:"skip_remount"`
	PipOptions       []string `yaml:"pip_options"`
}

func Default() *Config {
	return &Config{
		BundleRoot:       DefaultBundleRoot,
		OSRelease:        DefaultOSRelease,
		Python:           DefaultPython,
		Mountpoint:       DefaultMountpoint,
		BootstrapPattern: DefaultBootstrapPattern,
	}
}

var lookupEnv = os.LookupEnv

// Load returns the defaults overlaid with the YAML file at path and the
// environment. A missing file is only an error when required is set.
func Load(path string, required bool) (*Config, error) {
	c := Default()

	data, err := afero.ReadFile(file.AppFs, path)
	switch {
	case err == nil:
		slog.Debug("Loading configuration from " + path)
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
		slog.Debug("No configuration file at " + path + ", using defaults")
	default:
		return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"OPI_BUNDLE_ROOT":       &c.BundleRoot,
		"OPI_OS_RELEASE":        &c.OSRelease,
		"OPI_PYTHON":            &c.Python,
		"OPI_MOUNTPOINT":        &c.Mountpoint,
		"OPI_BOOTSTRAP_PATTERN": &c.BootstrapPattern,
	}
	for key, dst := range strs {
		if v, ok := lookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookupEnv("OPI_SKIP_REMOUNT"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid OPI_SKIP_REMOUNT value '%s': %w", v, err)
		}
		c.SkipRemount = b
	}

	if v, ok := lookupEnv("OPI_PIP_OPTIONS"); ok && v != "" {
		c.PipOptions = strings.Fields(v)
	}

	return nil
}

func (c *Config) Validate() error {
	paths := []struct {
		name  string
		value string
	}{
		{"bundle_root", c.BundleRoot},
		{"os_release", c.OSRelease},
		{"python", c.Python},
		{"mountpoint", c.Mountpoint},
	}
	for _, p := range paths {
		if p.value == "" {
			return fmt.Errorf("%s must be set", p.name)
		}
		if !filepath.IsAbs(p.value) {
			return fmt.Errorf("%s must be an absolute path, got '%s'", p.name, p.value)
		}
	}

	if c.BootstrapPattern == "" {
		return fmt.Errorf("bootstrap_pattern must be set")
	}
	if _, err := glob.Compile(c.BootstrapPattern); err != nil {
		return fmt.Errorf("invalid bootstrap_pattern '%s': %w", c.BootstrapPattern, err)
	}

	return nil
}
