// Package locator resolves the emulator executable and the game image.
//
// Resolution order for the executable is: configured value, the first
// existing platform candidate, then an interactive pick. The image is only
// ever looked up as EBOOT.PBP at the root of the first workspace folder.
// Newly discovered paths are persisted to the settings store.
package locator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tessro/pspr/internal/config"
)

// ImageFile is the game image looked up at the workspace root.
const ImageFile = "EBOOT.PBP"

// PickPrompt labels the interactive executable picker.
const PickPrompt = "Select PPSSPP executable"

// Errors returned by resolution.
var (
	ErrNotFound           = errors.New("not found")
	ErrExecutableNotFound = fmt.Errorf("PPSSPP executable %w", ErrNotFound)
	ErrImageNotFound      = fmt.Errorf("%s %w in workspace", ImageFile, ErrNotFound)

	// ErrPickCancelled is returned by a Picker when the user dismisses it.
	ErrPickCancelled = errors.New("selection cancelled")
)

// Picker prompts the user for a single file.
// Implementations return ErrPickCancelled when the user dismisses the prompt.
type Picker interface {
	PickFile(ctx context.Context, prompt string) (string, error)
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(ctx context.Context, prompt string) (string, error)

// PickFile calls f.
func (f PickerFunc) PickFile(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NoPicker never prompts; every pick is cancelled.
// Hosts without an interactive surface use it.
type NoPicker struct{}

// PickFile implements Picker.
func (NoPicker) PickFile(context.Context, string) (string, error) {
	return "", ErrPickCancelled
}

// Settings is the write side of the settings store.
type Settings interface {
	Set(key config.Key, value string, scope config.Scope) error
}

// Workspace gives access to the open workspace folders.
type Workspace interface {
	// FirstRoot returns the root of the first workspace folder.
	FirstRoot() (string, bool)
}

// Folders is a Workspace backed by a fixed list of directories.
type Folders []string

// FirstRoot returns the first folder, if any.
func (f Folders) FirstRoot() (string, bool) {
	if len(f) == 0 || f[0] == "" {
		return "", false
	}
	return f[0], true
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Options configures a Locator.
type Options struct {
	// Settings receives newly discovered paths. Required.
	Settings Settings

	// Picker is the interactive fallback for the executable.
	// Defaults to NoPicker.
	Picker Picker

	// Exists checks the filesystem. Defaults to FileExists.
	Exists func(path string) bool

	// Candidates overrides the platform probe list.
	// Defaults to DefaultCandidates().
	Candidates []string
}

// Locator resolves executable and image paths.
type Locator struct {
	settings   Settings
	picker     Picker
	exists     func(string) bool
	candidates []string
}

// New creates a Locator.
func New(opts Options) *Locator {
	l := &Locator{
		settings:   opts.Settings,
		picker:     opts.Picker,
		exists:     opts.Exists,
		candidates: opts.Candidates,
	}
	if l.picker == nil {
		l.picker = NoPicker{}
	}
	if l.exists == nil {
		l.exists = FileExists
	}
	if l.candidates == nil {
		l.candidates = DefaultCandidates()
	}
	return l
}

// Candidates returns the probe list in order.
func (l *Locator) Candidates() []string {
	return append([]string(nil), l.candidates...)
}

// Probe returns the first candidate that exists.
func (l *Locator) Probe() (string, bool) {
	for _, guess := range l.candidates {
		if l.exists(guess) {
			return guess, true
		}
	}
	return "", false
}

// ResolveExecutable returns the emulator executable.
// A configured value is returned as-is, without checking the filesystem.
// A probed or picked path is persisted to the global scope.
func (l *Locator) ResolveExecutable(ctx context.Context, configured string) (string, error) {
	log := slog.With("component", "locator")

	if configured != "" {
		log.Debug("executable configured", "path", configured)
		return configured, nil
	}

	if path, ok := l.Probe(); ok {
		log.Info("executable found by probe", "path", path)
		l.persist(config.KeyExecutablePath, path, config.ScopeGlobal)
		return path, nil
	}

	path, err := l.picker.PickFile(ctx, PickPrompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if !errors.Is(err, ErrPickCancelled) {
			log.Warn("executable picker failed", "error", err)
		}
		return "", ErrExecutableNotFound
	}
	if path == "" {
		return "", ErrExecutableNotFound
	}

	log.Info("executable picked", "path", path)
	l.persist(config.KeyExecutablePath, path, config.ScopeGlobal)
	return path, nil
}

// ResolveImage returns EBOOT.PBP from the first workspace root.
// A found image is persisted to the workspace scope.
func (l *Locator) ResolveImage(ctx context.Context, ws Workspace) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if ws == nil {
		return "", ErrImageNotFound
	}
	root, ok := ws.FirstRoot()
	if !ok {
		return "", ErrImageNotFound
	}

	image := filepath.Join(root, ImageFile)
	if !l.exists(image) {
		return "", ErrImageNotFound
	}

	slog.Info("image found in workspace", "component", "locator", "path", image)
	l.persist(config.KeyImagePath, image, config.ScopeWorkspace)
	return image, nil
}

// persist writes a discovered value. A failed write is logged and otherwise
// ignored; the resolved path is still usable for this launch.
func (l *Locator) persist(key config.Key, value string, scope config.Scope) {
	if l.settings == nil {
		return
	}
	if err := l.settings.Set(key, value, scope); err != nil {
		slog.Warn("failed to persist setting", "component", "locator", "key", key, "scope", scope, "error", err)
	}
}
