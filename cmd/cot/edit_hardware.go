package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/threatflux/cot/internal/editops"
)

var (
	editHardwareProfile     string
	editHardwareCPUs        int
	editHardwareCPUsSet     bool
	editHardwareMemoryMB    int
	editHardwareMemorySet   bool
	editHardwareNICs        int
	editHardwareNICsSet     bool
	editHardwareNICNetworks string
	editHardwareSerial      int
	editHardwareSerialSet   bool
)

var editHardwareCmd = &cobra.Command{
	Use:   "edit-hardware PACKAGE",
	Short: "Change CPU, memory, NIC, or serial port counts and assignments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := editops.HardwareEdit{Profile: editHardwareProfile}
		if editHardwareCPUsSet {
			e.CPUs = &editHardwareCPUs
		}
		if editHardwareMemorySet {
			e.MemoryMB = &editHardwareMemoryMB
		}
		if editHardwareNICsSet {
			e.NICs = &editHardwareNICs
		}
		if editHardwareNICNetworks != "" {
			e.NICNetworks = strings.Split(editHardwareNICNetworks, ",")
		}
		if editHardwareSerialSet {
			e.SerialPorts = &editHardwareSerial
		}

		sess, err := newSession()
		if err != nil {
			return err
		}

		ctx, err := loadContext(sess, args[0])
		if err != nil {
			sess.Close()
			return err
		}

		if err := ctx.EditHardware(e); err != nil {
			sess.Close()
			return err
		}

		return runEdit(sess, ctx, args[0], map[string]string{})
	},
}

func init() {
	editHardwareCmd.Flags().StringVar(&editHardwareProfile, "profile", "", "configuration profile to scope the edit to (default: whole universe)")
	editHardwareCmd.Flags().IntVar(&editHardwareCPUs, "cpus", 0, "virtual CPU count")
	editHardwareCmd.Flags().IntVar(&editHardwareMemoryMB, "memory", 0, "memory in megabytes")
	editHardwareCmd.Flags().IntVar(&editHardwareNICs, "nics", 0, "number of network adapters")
	editHardwareCmd.Flags().StringVar(&editHardwareNICNetworks, "nic-networks", "", "comma-separated network names, one per NIC (last repeats for extras)")
	editHardwareCmd.Flags().IntVar(&editHardwareSerial, "serial-ports", 0, "number of serial ports")

	editHardwareCmd.PreRun = func(cmd *cobra.Command, args []string) {
		editHardwareCPUsSet = cmd.Flags().Changed("cpus")
		editHardwareMemorySet = cmd.Flags().Changed("memory")
		editHardwareNICsSet = cmd.Flags().Changed("nics")
		editHardwareSerialSet = cmd.Flags().Changed("serial-ports")
	}

	rootCmd.AddCommand(editHardwareCmd)
}
