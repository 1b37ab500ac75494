package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig is the optional per-project configuration read from
// clifdict.yaml in the project root. Every field can be overridden by a CLI
// flag; the file just spares repeating paths on every invocation.
type ProjectConfig struct {
	// Version tags the Dictionary produced by build.
	Version string `yaml:"version"`
	// Schema is the DDL file path, relative to the project root.
	Schema string `yaml:"schema"`
	// Vocabulary is the root directory of the vocabulary CSV tree.
	Vocabulary string `yaml:"vocabulary"`
	// Output is the path the build command writes the Dictionary to.
	Output string `yaml:"output"`
}

// Load reads clifdict.yaml from the given project directory. Environment
// variables override file values so CI pipelines can retarget paths without
// editing the file.
func Load(projectPath string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectPath, clifdict.DictionaryConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", clifdict.ErrInvalidConfig, configPath, err)
	}
	cfg.applyEnvOverrides()
	return &cfg, nil
}

func (c *ProjectConfig) applyEnvOverrides() {
	if v := os.Getenv("CLIFDICT_VERSION"); v != "" {
		c.Version = v
	}
	if v := os.Getenv("CLIFDICT_SCHEMA"); v != "" {
		c.Schema = v
	}
	if v := os.Getenv("CLIFDICT_VOCABULARY"); v != "" {
		c.Vocabulary = v
	}
	if v := os.Getenv("CLIFDICT_OUTPUT"); v != "" {
		c.Output = v
	}
}
