package main

import (
	"github.com/spf13/cobra"
)

var removeFileID string

var removeFileCmd = &cobra.Command{
	Use:   "remove-file [HREF] PACKAGE",
	Short: "Remove a file (and any disk referencing it) from a package",
	Long: "Remove a file (and any disk referencing it) from a package.\n" +
		"Identify the file by its href (the filename referenced from the\n" +
		"package), by --file-id, or both — when both are given they must\n" +
		"refer to the same entry.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var href, pkgPath string
		switch len(args) {
		case 2:
			href, pkgPath = args[0], args[1]
		case 1:
			pkgPath = args[0]
		}
		// ctx.RemoveFile rejects href=="" && removeFileID=="" itself via
		// resources.ResolveFileTarget, so no separate check is needed here.

		sess, err := newSession()
		if err != nil {
			return err
		}

		ctx, err := loadContext(sess, pkgPath)
		if err != nil {
			sess.Close()
			return err
		}

		if err := ctx.RemoveFile(removeFileID, href); err != nil {
			sess.Close()
			return err
		}

		return runEdit(sess, ctx, pkgPath, map[string]string{})
	},
}

func init() {
	removeFileCmd.Flags().StringVar(&removeFileID, "file-id", "", "remove by File/id instead of (or in addition to) href")
	rootCmd.AddCommand(removeFileCmd)
}
