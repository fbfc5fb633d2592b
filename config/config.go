// Package config loads probe sets from YAML or JSON files so operators can
// point the checker at their own endpoints without recompiling.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/drblury/netcheck/jsonutil"
)

// Base set names accepted by File.Base.
const (
	BaseDefault = "default"
	BaseAll     = "all"
	BaseNone    = "none"
)

// File is the on-disk representation of a probe set.
type File struct {
	// Base selects the built-in probes the file extends.
	Base string `yaml:"base" json:"base"`
	// Timeout, Cache and AllowMetered set the transport defaults for every
	// probe, built-in ones included.
	Timeout      string  `yaml:"timeout" json:"timeout"`
	Cache        string  `yaml:"cache" json:"cache"`
	AllowMetered *bool   `yaml:"allow_metered" json:"allow_metered"`
	Probes       []Entry `yaml:"probes" json:"probes"`
}

// Entry defines one custom probe. Empty fields inherit the file defaults.
type Entry struct {
	Name         string `yaml:"name" json:"name"`
	URL          string `yaml:"url" json:"url"`
	Method       string `yaml:"method" json:"method"`
	ExpectStatus []int  `yaml:"expect_status" json:"expect_status"`
	Timeout      string `yaml:"timeout" json:"timeout"`
	Cache        string `yaml:"cache" json:"cache"`
	AllowMetered *bool  `yaml:"allow_metered" json:"allow_metered"`
}

// DefaultFile returns the configuration used when no file is provided.
func DefaultFile() File {
	return File{Base: BaseDefault}
}

// Load reads a probe file. The format follows the extension: .json is JSON,
// anything else YAML. An empty path or a missing file yields DefaultFile.
func Load(path string) (File, error) {
	if path == "" {
		return DefaultFile(), nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultFile(), nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	return Parse(content, format)
}

// Parse decodes content in the given format ("yaml" or "json").
func Parse(content []byte, format string) (File, error) {
	cfg := DefaultFile()

	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return File{}, fmt.Errorf("parse config: %w", err)
		}
	case "json":
		if err := jsonutil.Unmarshal(content, &cfg); err != nil {
			return File{}, fmt.Errorf("parse config: %w", err)
		}
	default:
		return File{}, fmt.Errorf("parse config: unsupported format %q", format)
	}

	cfg.Base = strings.ToLower(strings.TrimSpace(cfg.Base))
	if cfg.Base == "" {
		cfg.Base = BaseDefault
	}
	switch cfg.Base {
	case BaseDefault, BaseAll, BaseNone:
	default:
		return File{}, fmt.Errorf("parse config: unknown base set %q", cfg.Base)
	}
	return cfg, nil
}
