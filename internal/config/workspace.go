package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorkspaceConfig is the per-workspace settings file (.pspr.yaml).
type WorkspaceConfig struct {
	ExecutablePath string `yaml:"executable-path,omitempty"`
	ImagePath      string `yaml:"image-path,omitempty"`
}

// LoadWorkspaceConfig reads a workspace settings file.
// Returns nil config and nil error if the file doesn't exist.
func LoadWorkspaceConfig(path string) (*WorkspaceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg WorkspaceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveWorkspaceConfig writes a workspace settings file.
func SaveWorkspaceConfig(path string, cfg *WorkspaceConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode workspace config: %w", err)
	}
	return writeFileAtomic(path, data, 0644)
}
