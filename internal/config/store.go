package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tessro/pspr/internal/paths"
)

// Key names a setting.
type Key string

// Known setting keys.
const (
	KeyExecutablePath Key = "executable-path"
	KeyImagePath      Key = "image-path"
)

// Keys lists every known setting key in display order.
var Keys = []Key{KeyExecutablePath, KeyImagePath}

// Scope is a persistence tier for settings.
type Scope string

const (
	// ScopeGlobal applies everywhere.
	ScopeGlobal Scope = "global"
	// ScopeWorkspace applies to the current workspace only.
	ScopeWorkspace Scope = "workspace"
)

// ErrNoWorkspace is returned when a workspace-scoped write has no workspace to go to.
var ErrNoWorkspace = errors.New("no workspace is open")

// Store reads and writes settings in both scopes.
// Files are re-read on every access so edits made outside pspr are seen.
type Store struct {
	mu sync.Mutex

	globalPath    string
	workspacePath string
}

// NewStore creates a store backed by the given global config file and
// workspace root. An empty workspaceRoot means no workspace is open.
func NewStore(globalPath, workspaceRoot string) *Store {
	s := &Store{globalPath: globalPath}
	if workspaceRoot != "" {
		s.workspacePath = paths.WorkspaceSettingsPath(workspaceRoot)
	}
	return s
}

// OpenStore creates a store using the default global config path.
func OpenStore(workspaceRoot string) (*Store, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	return NewStore(path, workspaceRoot), nil
}

// GlobalPath returns the global settings file path.
func (s *Store) GlobalPath() string {
	return s.globalPath
}

// WorkspacePath returns the workspace settings file path, or empty if no
// workspace is open.
func (s *Store) WorkspacePath() string {
	return s.workspacePath
}

// Get returns the effective value of key. The workspace scope wins over the
// global scope. Unreadable files are logged and treated as empty.
func (s *Store) Get(key Key) (string, bool) {
	for _, scope := range []Scope{ScopeWorkspace, ScopeGlobal} {
		v, ok, err := s.Lookup(key, scope)
		if err != nil {
			slog.Warn("settings read failed", "component", "config", "scope", scope, "key", key, "error", err)
			continue
		}
		if ok {
			return v, true
		}
	}
	return "", false
}

// Lookup returns the value of key in a single scope.
func (s *Store) Lookup(key Key, scope Scope) (string, bool, error) {
	if err := ValidateKey(string(key)); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var v string
	switch scope {
	case ScopeGlobal:
		cfg, err := LoadGlobalConfigFromPath(s.globalPath)
		if err != nil {
			return "", false, err
		}
		if cfg != nil {
			v = globalField(cfg, key)
		}
	case ScopeWorkspace:
		if s.workspacePath == "" {
			return "", false, nil
		}
		cfg, err := LoadWorkspaceConfig(s.workspacePath)
		if err != nil {
			return "", false, err
		}
		if cfg != nil {
			v = workspaceField(cfg, key)
		}
	default:
		return "", false, invalidScope(string(scope))
	}
	return v, v != "", nil
}

// Set writes key=value in the given scope.
func (s *Store) Set(key Key, value string, scope Scope) error {
	if err := ValidateKey(string(key)); err != nil {
		return err
	}
	if err := ValidateValue(key, value); err != nil {
		return err
	}
	return s.update(key, value, scope)
}

// Unset removes key from the given scope.
func (s *Store) Unset(key Key, scope Scope) error {
	if err := ValidateKey(string(key)); err != nil {
		return err
	}
	return s.update(key, "", scope)
}

// Global returns the parsed global config, or an empty config if the file
// doesn't exist.
func (s *Store) Global() (*GlobalConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := LoadGlobalConfigFromPath(s.globalPath)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &GlobalConfig{}
	}
	return cfg, nil
}

func (s *Store) update(key Key, value string, scope Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch scope {
	case ScopeGlobal:
		cfg, err := LoadGlobalConfigFromPath(s.globalPath)
		if err != nil {
			return err
		}
		if cfg == nil {
			cfg = &GlobalConfig{}
		}
		setGlobalField(cfg, key, value)
		if err := SaveGlobalConfig(s.globalPath, cfg); err != nil {
			return err
		}
	case ScopeWorkspace:
		if s.workspacePath == "" {
			return ErrNoWorkspace
		}
		cfg, err := LoadWorkspaceConfig(s.workspacePath)
		if err != nil {
			return err
		}
		if cfg == nil {
			cfg = &WorkspaceConfig{}
		}
		setWorkspaceField(cfg, key, value)
		if err := SaveWorkspaceConfig(s.workspacePath, cfg); err != nil {
			return err
		}
	default:
		return invalidScope(string(scope))
	}

	slog.Debug("setting updated", "component", "config", "scope", scope, "key", key, "cleared", value == "")
	return nil
}

func globalField(cfg *GlobalConfig, key Key) string {
	switch key {
	case KeyExecutablePath:
		return cfg.ExecutablePath
	case KeyImagePath:
		return cfg.ImagePath
	}
	return ""
}

func setGlobalField(cfg *GlobalConfig, key Key, value string) {
	switch key {
	case KeyExecutablePath:
		cfg.ExecutablePath = value
	case KeyImagePath:
		cfg.ImagePath = value
	}
}

func workspaceField(cfg *WorkspaceConfig, key Key) string {
	switch key {
	case KeyExecutablePath:
		return cfg.ExecutablePath
	case KeyImagePath:
		return cfg.ImagePath
	}
	return ""
}

func setWorkspaceField(cfg *WorkspaceConfig, key Key, value string) {
	switch key {
	case KeyExecutablePath:
		cfg.ExecutablePath = value
	case KeyImagePath:
		cfg.ImagePath = value
	}
}
