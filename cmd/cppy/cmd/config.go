package cmd

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cppytools/cppy/pkg/pygen"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given. A missing file is not an error.
const defaultConfigFile = ".cppy.yaml"

// Config holds the file-configurable settings.
type Config struct {
	// Translate feeds pygen and the translate command defaults.
	Translate TranslateConfig `yaml:"translate"`
}

// TranslateConfig mirrors the translate command's tunables.
type TranslateConfig struct {
	Indent  int    `yaml:"indent"`
	Header  string `yaml:"header"`
	Postfix string `yaml:"postfix"`
}

var cfg Config

// loadConfig reads the YAML config if one is present. Explicit --config
// paths must exist; the default path is optional.
func loadConfig() error {
	path := configPath
	required := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	logger.Debug("config loaded", zap.String("path", path))
	return nil
}

// emitterOptions merges the config file over the built-in defaults.
func emitterOptions() pygen.Options {
	opts := pygen.DefaultOptions()
	if cfg.Translate.Indent > 0 {
		opts.Indent = cfg.Translate.Indent
	}
	if cfg.Translate.Header != "" {
		opts.Header = cfg.Translate.Header
	}
	return opts
}
