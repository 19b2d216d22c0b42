// Command cot edits OVF/OVA virtual appliance packages: attach or
// remove disks and files, resize CPU/memory/NIC/serial hardware, set
// product metadata and properties, inject bootstrap configuration
// media, and report package contents.
package main

import (
	"fmt"
	"os"

	"github.com/threatflux/cot/internal/errors"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cot:", err)
		os.Exit(errors.ExitCode(err))
	}
}
