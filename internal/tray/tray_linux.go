package tray

import "context"

// Run is unavailable on Linux; use the terminal UI instead.
func Run(context.Context, Options) error {
	return ErrUnsupported
}
