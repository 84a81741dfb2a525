// catalogctl inspects and drives the MinUI catalog from a shell. It reads
// the same config.json as the launcher and works on the same files, so a
// command queued with "open" is picked up by the launch script.
package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := newRootCommand(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
