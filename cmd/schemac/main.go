// Command schemac is the CLI front end for the schemac semantic
// analyzer. It owns the parts spec.md declares out of scope for the
// compiler core: reading files, driving the import loop, printing
// diagnostics, and process exit status (SPEC_FULL.md S4.13).
package main

import (
	"os"

	"schemac.dev/schemac/cmd/schemac/app"
)

func main() {
	os.Exit(app.Run(app.NoParser))
}
