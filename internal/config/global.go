// Package config provides the pspr settings store.
//
// Settings live in two scopes: a global TOML file shared by every workspace
// and a per-workspace YAML file at the workspace root. Reads return the
// effective value, with the workspace scope taking precedence.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tessro/pspr/internal/paths"
)

// GlobalConfig represents the global pspr configuration.
type GlobalConfig struct {
	// ExecutablePath is the PPSSPP binary to launch.
	ExecutablePath string `toml:"executable-path,omitempty"`

	// ImagePath is the game image passed to the emulator.
	ImagePath string `toml:"image-path,omitempty"`

	// Log contains logging settings.
	Log LogConfig `toml:"log,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the slog level name ("debug", "info", "warn", "error").
	Level string `toml:"level,omitempty"`
	// Path overrides the log file location.
	Path string `toml:"path,omitempty"`
}

// DefaultLogLevel is the log level used when none is configured.
const DefaultLogLevel = "info"

// GlobalConfigPath returns the path to the global pspr config.
func GlobalConfigPath() (string, error) {
	return paths.ConfigPath()
}

// LoadGlobalConfig loads the global pspr configuration.
// Returns nil config and nil error if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadGlobalConfigFromPath(path)
}

// LoadGlobalConfigFromPath loads the global config from a specific path.
// Returns nil config and nil error if the file doesn't exist.
func LoadGlobalConfigFromPath(path string) (*GlobalConfig, error) {
	var cfg GlobalConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveGlobalConfig writes the global config to path, creating its directory.
func SaveGlobalConfig(path string, cfg *GlobalConfig) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode global config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes(), 0600)
}

// GetLogLevel returns the configured log level or the default.
func (c *GlobalConfig) GetLogLevel() string {
	if c != nil && c.Log.Level != "" {
		return c.Log.Level
	}
	return DefaultLogLevel
}

// GetLogPath returns the configured log path, or empty for the default.
func (c *GlobalConfig) GetLogPath() string {
	if c == nil {
		return ""
	}
	return c.Log.Path
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
