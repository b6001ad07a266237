// Package paths provides a single source of truth for pspr file paths.
// All path helpers honor environment variable overrides for isolated testing.
//
// Path resolution precedence:
//  1. Specific env vars (PSPR_PID_PATH, PSPR_LOG_PATH) take highest priority
//  2. PSPR_DIR env var sets the base directory (derives pid/log/config)
//  3. Default behavior (~/.pspr, ~/.config/pspr) when no env vars are set
package paths

import (
	"os"
	"path/filepath"
)

// Environment variable names for path overrides.
const (
	// EnvPsprDir is the base directory override (e.g., /tmp/pspr-test).
	// When set, PID, log, and config paths derive from this directory.
	EnvPsprDir = "PSPR_DIR"

	// EnvPIDPath overrides the emulator PID file path directly.
	EnvPIDPath = "PSPR_PID_PATH"

	// EnvLogPath overrides the log file path directly.
	EnvLogPath = "PSPR_LOG_PATH"
)

// WorkspaceSettingsFile is the name of the per-workspace settings file,
// stored at the workspace root.
const WorkspaceSettingsFile = ".pspr.yaml"

// BaseDir returns the pspr base directory (~/.pspr by default).
// Honors PSPR_DIR environment variable.
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvPsprDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pspr"), nil
}

// ConfigDir returns the pspr config directory (~/.config/pspr by default).
// When PSPR_DIR is set, returns PSPR_DIR/config instead.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvPsprDir); dir != "" {
		return filepath.Join(dir, "config"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pspr"), nil
}

// ConfigPath returns the path to the global settings file.
// (~/.config/pspr/config.toml by default, or PSPR_DIR/config/config.toml).
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// WorkspaceSettingsPath returns the settings file for a workspace root.
func WorkspaceSettingsPath(root string) string {
	return filepath.Join(root, WorkspaceSettingsFile)
}

// PIDPath returns the emulator PID file path.
// Precedence: PSPR_PID_PATH > PSPR_DIR/ppsspp.pid > ~/.pspr/ppsspp.pid
func PIDPath() string {
	if path := os.Getenv(EnvPIDPath); path != "" {
		return path
	}
	base, err := BaseDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "pspr-ppsspp.pid")
	}
	return filepath.Join(base, "ppsspp.pid")
}

// LogPath returns the log file path.
// Precedence: PSPR_LOG_PATH > PSPR_DIR/pspr.log > ~/.pspr/pspr.log
func LogPath() string {
	if path := os.Getenv(EnvLogPath); path != "" {
		return path
	}
	base, err := BaseDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "pspr.log")
	}
	return filepath.Join(base, "pspr.log")
}
