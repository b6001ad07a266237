// Command pspr launches and supervises the PPSSPP emulator.
package main

import (
	"os"

	"github.com/tessro/pspr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
