package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threatflux/cot/internal/editops"
	"github.com/threatflux/cot/internal/ovfpkg"
)

var infoCmd = &cobra.Command{
	Use:   "info PACKAGE",
	Short: "Report a package's descriptor contents and manifest status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		ctx, err := loadContext(sess, args[0])
		if err != nil {
			return err
		}

		printInfo(ctx)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(ctx *editops.Context) {
	fmt.Printf("Package: %s (%s)\n", ctx.Package.Path, formName(ctx.Package.Form))
	fmt.Printf("Product: %s %s (%s, class %s)\n", ctx.Product.Product, ctx.Product.Version, ctx.Product.Vendor, ctx.Product.ProductClass)

	fmt.Println("Files:")
	for _, f := range ctx.Files.List() {
		fmt.Printf("  %s  %s  %d bytes\n", f.ID, f.Href, f.Size)
	}

	fmt.Println("Disks:")
	for _, d := range ctx.Disks.List() {
		fmt.Printf("  %s  capacity=%d  fileRef=%s\n", d.ID, d.CapacityBytes, d.FileRef)
	}

	fmt.Println("Networks:")
	for _, n := range ctx.Networks.List() {
		fmt.Printf("  %s  %s\n", n.Name, n.Description)
	}

	fmt.Println("Properties:")
	for _, p := range ctx.Properties.List() {
		fmt.Printf("  %s = %s (%s)\n", p.Key, p.Value, p.Type)
	}

	if mismatches, err := ctx.Package.VerifyManifest(); err != nil {
		fmt.Println("Manifest: unavailable:", err)
	} else if len(mismatches) == 0 {
		fmt.Println("Manifest: OK")
	} else {
		fmt.Println("Manifest: MISMATCH")
		for _, m := range mismatches {
			if m.Missing {
				fmt.Printf("  %s: missing\n", m.Name)
				continue
			}
			fmt.Printf("  %s: expected %s, got %s\n", m.Name, m.Expected, m.Actual)
		}
	}
}

func formName(f ovfpkg.Form) string {
	switch f {
	case ovfpkg.FormDirectory:
		return "directory"
	case ovfpkg.FormTAR:
		return "OVA"
	default:
		return "unknown"
	}
}
