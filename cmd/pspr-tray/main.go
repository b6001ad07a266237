// Command pspr-tray runs pspr in the system tray.
//
// It is equivalent to `pspr tray` and accepts the same global flags. On
// Windows build it with -ldflags -H=windowsgui to hide the console.
package main

import (
	"os"

	"github.com/tessro/pspr/internal/cli"
)

func main() {
	args := append([]string{"tray"}, os.Args[1:]...)
	if err := cli.ExecuteArgs(args); err != nil {
		os.Exit(1)
	}
}
