// Package runner implements the pspr commands: run, stop and shutdown.
//
// Run resolves the executable, then the image, and only then starts the
// emulator. Hosts (CLI, TUI, tray) construct one Runner and route their
// commands through it.
package runner

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tessro/pspr/internal/config"
	"github.com/tessro/pspr/internal/locator"
	"github.com/tessro/pspr/internal/supervisor"
)

// User-facing messages for unresolved paths.
const (
	MsgExecutableNotFound = "PPSSPP executable not found. Configure executable-path."
	MsgImageNotFound      = "EBOOT.PBP not found in workspace. Configure image-path or place EBOOT.PBP in the workspace root."
)

// Settings is the read side of the settings store.
type Settings interface {
	Get(key config.Key) (string, bool)
}

// Options configures a Runner. All fields are required.
type Options struct {
	Settings   Settings
	Locator    *locator.Locator
	Workspace  locator.Workspace
	Supervisor *supervisor.Supervisor
	Surface    supervisor.Surface
}

// Runner wires settings, the locator and the supervisor together.
type Runner struct {
	settings  Settings
	locator   *locator.Locator
	workspace locator.Workspace
	sup       *supervisor.Supervisor
	surface   supervisor.Surface
}

// New creates a Runner and resets the running flag.
func New(opts Options) *Runner {
	r := &Runner{
		settings:  opts.Settings,
		locator:   opts.Locator,
		workspace: opts.Workspace,
		sup:       opts.Supervisor,
		surface:   opts.Surface,
	}
	r.surface.SetFlag(supervisor.RunningFlag, false)
	return r
}

// Paths is a resolved executable/image pair.
type Paths struct {
	Executable string
	Image      string
}

// Resolve returns the executable and image to launch, prompting and
// persisting as needed. The image is not looked up if the executable
// could not be resolved.
func (r *Runner) Resolve(ctx context.Context) (Paths, error) {
	configuredExe, _ := r.settings.Get(config.KeyExecutablePath)
	exe, err := r.locator.ResolveExecutable(ctx, configuredExe)
	if err != nil {
		return Paths{}, err
	}

	image, ok := r.settings.Get(config.KeyImagePath)
	if !ok {
		image, err = r.locator.ResolveImage(ctx, r.workspace)
		if err != nil {
			return Paths{Executable: exe}, err
		}
	}

	return Paths{Executable: exe, Image: image}, nil
}

// Run resolves both paths and launches the emulator.
// Unresolved paths are reported to the surface and returned as
// locator.ErrExecutableNotFound or locator.ErrImageNotFound.
func (r *Runner) Run(ctx context.Context) (*supervisor.Handle, error) {
	log := slog.With("component", "runner")

	p, err := r.Resolve(ctx)
	if err != nil {
		switch {
		case errors.Is(err, locator.ErrExecutableNotFound):
			r.surface.Error(MsgExecutableNotFound)
		case errors.Is(err, locator.ErrImageNotFound):
			r.surface.Error(MsgImageNotFound)
		default:
			// Cancelled by the host; nothing to tell the user.
			log.Debug("run aborted", "error", err)
			return nil, err
		}
		r.surface.SetFlag(supervisor.RunningFlag, false)
		log.Info("run aborted", "error", err)
		return nil, err
	}

	return r.sup.Start(p.Executable, p.Image)
}

// Stop stops the emulator.
func (r *Runner) Stop() error {
	return r.sup.Stop()
}

// Shutdown terminates a running emulator without notifications.
func (r *Runner) Shutdown() {
	r.sup.Shutdown()
}

// Status returns the supervisor state.
func (r *Runner) Status() supervisor.Status {
	return r.sup.Status()
}

// Candidates returns the locator's probe list.
func (r *Runner) Candidates() []string {
	return r.locator.Candidates()
}
