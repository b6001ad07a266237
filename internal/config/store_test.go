package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	workspace := filepath.Join(root, "game")
	if err := os.MkdirAll(workspace, 0755); err != nil {
		t.Fatal(err)
	}
	return NewStore(filepath.Join(root, "config", "config.toml"), workspace), workspace
}

func TestStoreGetEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	if v, ok := s.Get(KeyExecutablePath); ok {
		t.Errorf("Get() = %q, true; want unset", v)
	}
}

func TestStoreSetGlobal(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Set(KeyExecutablePath, "/usr/bin/ppsspp", ScopeGlobal); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, ok := s.Get(KeyExecutablePath)
	if !ok || v != "/usr/bin/ppsspp" {
		t.Errorf("Get() = %q, %v; want /usr/bin/ppsspp", v, ok)
	}

	data, err := os.ReadFile(s.GlobalPath())
	if err != nil {
		t.Fatalf("read global config: %v", err)
	}
	if !strings.Contains(string(data), `executable-path = "/usr/bin/ppsspp"`) {
		t.Errorf("global config missing key, got:\n%s", data)
	}
}

func TestStoreSetWorkspace(t *testing.T) {
	s, workspace := newTestStore(t)
	image := filepath.Join(workspace, "EBOOT.PBP")

	if err := s.Set(KeyImagePath, image, ScopeWorkspace); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(workspace, ".pspr.yaml"))
	if err != nil {
		t.Fatalf("read workspace config: %v", err)
	}
	if !strings.Contains(string(data), "image-path: "+image) {
		t.Errorf("workspace config missing key, got:\n%s", data)
	}

	if _, ok, _ := s.Lookup(KeyImagePath, ScopeGlobal); ok {
		t.Error("workspace write leaked into global scope")
	}
}

func TestStoreWorkspaceWins(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Set(KeyExecutablePath, "/usr/bin/ppsspp", ScopeGlobal); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(KeyExecutablePath, "/opt/ppsspp/PPSSPPSDL", ScopeWorkspace); err != nil {
		t.Fatal(err)
	}

	if v, _ := s.Get(KeyExecutablePath); v != "/opt/ppsspp/PPSSPPSDL" {
		t.Errorf("Get() = %q, want workspace value", v)
	}

	if err := s.Unset(KeyExecutablePath, ScopeWorkspace); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get(KeyExecutablePath); v != "/usr/bin/ppsspp" {
		t.Errorf("Get() after unset = %q, want global value", v)
	}
}

func TestStoreSetPreservesOtherKeys(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Set(KeyExecutablePath, "/usr/bin/ppsspp", ScopeGlobal); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(KeyImagePath, "/games/EBOOT.PBP", ScopeGlobal); err != nil {
		t.Fatal(err)
	}

	if v, _ := s.Get(KeyExecutablePath); v != "/usr/bin/ppsspp" {
		t.Errorf("executable-path = %q after second write", v)
	}
}

func TestStoreNoWorkspace(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "config.toml"), "")

	err := s.Set(KeyImagePath, "/games/EBOOT.PBP", ScopeWorkspace)
	if !errors.Is(err, ErrNoWorkspace) {
		t.Errorf("Set() error = %v, want ErrNoWorkspace", err)
	}
	if s.WorkspacePath() != "" {
		t.Errorf("WorkspacePath() = %q, want empty", s.WorkspacePath())
	}
	if _, ok, err := s.Lookup(KeyImagePath, ScopeWorkspace); ok || err != nil {
		t.Errorf("Lookup() = %v, %v; want unset, nil", ok, err)
	}
}

func TestStoreRejectsInvalidInput(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Set("bios-path", "/x", ScopeGlobal); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set(unknown key) = %v, want ErrUnknownKey", err)
	}
	if err := s.Set(KeyImagePath, "/x", Scope("user")); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("Set(bad scope) = %v, want ErrInvalidScope", err)
	}
	if err := s.Set(KeyImagePath, "", ScopeGlobal); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("Set(empty) = %v, want ErrEmptyValue", err)
	}
}

func TestStoreGetSkipsCorruptScope(t *testing.T) {
	s, workspace := newTestStore(t)

	if err := s.Set(KeyExecutablePath, "/usr/bin/ppsspp", ScopeGlobal); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(workspace, ".pspr.yaml"), []byte("executable-path: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	if v, ok := s.Get(KeyExecutablePath); !ok || v != "/usr/bin/ppsspp" {
		t.Errorf("Get() = %q, %v; want global fallback", v, ok)
	}
}
