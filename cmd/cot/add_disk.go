package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/threatflux/cot/internal/editops"
	"github.com/threatflux/cot/internal/errors"
)

var (
	addDiskController string
	addDiskAddress    string
)

var addDiskCmd = &cobra.Command{
	Use:   "add-disk DISK_IMAGE PACKAGE",
	Short: "Attach a disk image to a package as a new disk-drive item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bus, unit, err := parseAddress(addDiskAddress)
		if err != nil {
			return err
		}

		sess, err := newSession()
		if err != nil {
			return err
		}

		ctx, err := loadContext(sess, args[1])
		if err != nil {
			sess.Close()
			return err
		}

		staged := make(map[string]string)
		req := editops.AddDiskRequest{
			HostPath:       args[0],
			ControllerType: addDiskController,
			Bus:            bus,
			Unit:           unit,
			Force:          flagForce,
		}
		if err := ctx.AddDisk(req, newHelperRegistry(sess), staged); err != nil {
			sess.Close()
			return err
		}

		return runEdit(sess, ctx, args[1], staged)
	},
}

func init() {
	addDiskCmd.Flags().StringVarP(&addDiskController, "controller", "c", "scsi", "controller type: scsi or ide")
	addDiskCmd.Flags().StringVarP(&addDiskAddress, "address", "a", "0:0", "bus:unit address on the controller, e.g. 0:1")
	rootCmd.AddCommand(addDiskCmd)
}

// parseAddress splits a "bus:unit" spec into its two integers.
func parseAddress(spec string) (int, int, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, 0, errors.WrapWithKind(errors.New("address must be bus:unit"), errors.KindInvalidInput, "parse address %q", spec)
	}
	bus, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errors.WrapWithKind(err, errors.KindInvalidInput, "parse controller bus %q", spec)
	}
	unit, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, errors.WrapWithKind(err, errors.KindInvalidInput, "parse unit %q", spec)
	}
	return bus, unit, nil
}
