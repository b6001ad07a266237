package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tessro/pspr/internal/config"
	"github.com/tessro/pspr/internal/instance"
	"github.com/tessro/pspr/internal/locator"
	"github.com/tessro/pspr/internal/runner"
	"github.com/tessro/pspr/internal/supervisor"
)

// app is the object graph behind every command.
type app struct {
	workspace string
	store     *config.Store
	locator   *locator.Locator
	sup       *supervisor.Supervisor
	runner    *runner.Runner
}

// workspaceRoot returns the --workspace flag as an absolute path, or the
// current directory.
func workspaceRoot() (string, error) {
	dir := workspaceDir
	if dir == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve workspace: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("workspace: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workspace %s is not a directory", abs)
	}
	return abs, nil
}

// newApp wires settings, locator, supervisor and runner around surface.
// The supervisor shares the instance PID file with other pspr processes.
func newApp(surface supervisor.Surface, picker locator.Picker) (*app, error) {
	store, root, err := openStore()
	if err != nil {
		return nil, err
	}

	loc := locator.New(locator.Options{
		Settings: store,
		Picker:   picker,
	})
	sup := supervisor.New(supervisor.Options{
		Surface: surface,
		Tracker: instance.New(""),
	})

	return &app{
		workspace: root,
		store:     store,
		locator:   loc,
		sup:       sup,
		runner: runner.New(runner.Options{
			Settings:   store,
			Locator:    loc,
			Workspace:  locator.Folders{root},
			Supervisor: sup,
			Surface:    surface,
		}),
	}, nil
}

// openStore opens the settings store for the workspace root.
func openStore() (*config.Store, string, error) {
	root, err := workspaceRoot()
	if err != nil {
		return nil, "", err
	}
	store, err := config.OpenStore(root)
	if err != nil {
		return nil, "", fmt.Errorf("open settings: %w", err)
	}
	return store, root, nil
}
