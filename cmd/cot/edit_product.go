package main

import (
	"github.com/spf13/cobra"

	"github.com/threatflux/cot/internal/editops"
)

var (
	editProductProduct      string
	editProductVendor       string
	editProductVersion      string
	editProductFullVersion  string
	editProductProductClass string
)

var editProductCmd = &cobra.Command{
	Use:   "edit-product PACKAGE",
	Short: "Set product, vendor, version, and product-class metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}

		ctx, err := loadContext(sess, args[0])
		if err != nil {
			sess.Close()
			return err
		}

		ctx.EditProduct(editops.ProductEdit{
			Product:      editProductProduct,
			Vendor:       editProductVendor,
			Version:      editProductVersion,
			FullVersion:  editProductFullVersion,
			ProductClass: editProductProductClass,
		})

		return runEdit(sess, ctx, args[0], map[string]string{})
	},
}

func init() {
	editProductCmd.Flags().StringVar(&editProductProduct, "product", "", "product name")
	editProductCmd.Flags().StringVar(&editProductVendor, "vendor", "", "vendor name")
	editProductCmd.Flags().StringVar(&editProductVersion, "version", "", "short version")
	editProductCmd.Flags().StringVar(&editProductFullVersion, "full-version", "", "full version")
	editProductCmd.Flags().StringVar(&editProductProductClass, "product-class", "", "product class (drives platform bounds)")
	rootCmd.AddCommand(editProductCmd)
}
