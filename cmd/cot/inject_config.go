package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/threatflux/cot/internal/editops"
	"github.com/threatflux/cot/internal/errors"
)

var (
	injectConfigController string
	injectConfigAddress    string
)

var injectConfigCmd = &cobra.Command{
	Use:   "inject-config CONFIG_FILE PACKAGE",
	Short: "Build and attach a bootstrap configuration medium for the package's platform",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bus, unit, err := parseAddress(injectConfigAddress)
		if err != nil {
			return err
		}

		configBytes, err := os.ReadFile(args[0])
		if err != nil {
			return errors.WrapWithKind(err, errors.KindInvalidInput, "read config file %q", args[0])
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
		req := editops.InjectConfigRequest{
			ConfigBytes:    configBytes,
			ControllerType: injectConfigController,
			Bus:            bus,
			Unit:           unit,
		}
		if err := ctx.InjectConfig(req, newHelperRegistry(sess), staged); err != nil {
			sess.Close()
			return err
		}

		return runEdit(sess, ctx, args[1], staged)
	},
}

func init() {
	injectConfigCmd.Flags().StringVarP(&injectConfigController, "controller", "c", "ide", "controller type: scsi or ide")
	injectConfigCmd.Flags().StringVarP(&injectConfigAddress, "address", "a", "0:1", "bus:unit address on the controller")
	rootCmd.AddCommand(injectConfigCmd)
}
