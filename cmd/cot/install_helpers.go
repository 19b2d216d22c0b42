package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threatflux/cot/internal/helpers"
)

var allCapabilities = []helpers.Capability{
	helpers.CapabilityQemuImg,
	helpers.CapabilityMkisofs,
	helpers.CapabilityFatdisk,
	helpers.CapabilityVmdktool,
	helpers.CapabilityIsoinfo,
	helpers.CapabilityOvftool,
}

// installHelpersCmd reports which external helper tools are reachable
// on PATH; it never downloads or installs anything itself, since
// helper provisioning is an external collaborator's job.
var installHelpersCmd = &cobra.Command{
	Use:   "install-helpers",
	Short: "Report which external helper tools are available on PATH",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		reg := newHelperRegistry(sess)
		missing := 0
		for _, c := range allCapabilities {
			if path, err := reg.Resolve(c); err != nil {
				fmt.Printf("%-10s MISSING\n", c)
				missing++
			} else {
				fmt.Printf("%-10s %s\n", c, path)
			}
		}
		if missing > 0 {
			fmt.Printf("\n%d helper(s) not found on PATH; install them separately and re-run.\n", missing)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installHelpersCmd)
}
