//go:build !linux

package tray

import (
	"context"

	"github.com/getlantern/systray"

	"github.com/tessro/pspr/internal/logging"
)

// Run shows the tray icon and blocks until Quit is chosen or ctx is
// cancelled. It must be called from the main goroutine.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var d *dispatcher

	onReady := func() {
		systray.SetTitle(idleTitle)
		systray.SetTooltip(idleTooltip)

		mStatus := systray.AddMenuItem("", "Latest notification")
		mStatus.Disable()
		mStatus.Hide()
		mRun := systray.AddMenuItem("Run PPSSPP", "Launch EBOOT.PBP in PPSSPP")
		mStop := systray.AddMenuItem("Stop PPSSPP", "Close the running emulator")
		systray.AddSeparator()
		mOpen := systray.AddMenuItem("Open workspace", "Open the workspace folder")
		systray.AddSeparator()
		mQuit := systray.AddMenuItem("Quit", "Quit pspr")

		apply := func(v View) {
			systray.SetTitle(v.Title)
			systray.SetTooltip(v.Tooltip)
			if v.Message != "" {
				mStatus.SetTitle(v.Message)
				mStatus.Show()
			}
			setEnabled(mRun, v.RunEnabled)
			setEnabled(mStop, v.StopEnabled)
		}
		opts.State.OnChange(apply)
		syncState(opts)
		apply(opts.State.View())

		d = newDispatcher(ctx, opts, systray.Quit)

		// Menu item click handler:
		go func() {
			defer logging.LogPanic("tray-menu", nil)
			for {
				select {
				case <-mRun.ClickedCh:
					d.handle(ActionRun)
				case <-mStop.ClickedCh:
					d.handle(ActionStop)
				case <-mOpen.ClickedCh:
					d.handle(ActionOpenWorkspace)
				case <-mQuit.ClickedCh:
					d.handle(ActionQuit)
					return
				case <-ctx.Done():
					systray.Quit()
					return
				}
			}
		}()
	}

	onExit := func() {
		cancel()
		opts.State.OnChange(nil)
		opts.Runner.Shutdown()
		if d != nil {
			d.wait()
		}
	}

	systray.Run(onReady, onExit)
	return nil
}

func setEnabled(item *systray.MenuItem, enabled bool) {
	if enabled {
		item.Enable()
	} else {
		item.Disable()
	}
}
