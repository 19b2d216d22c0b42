package main

import (
	"github.com/spf13/cobra"
)

var addFileCmd = &cobra.Command{
	Use:   "add-file FILE PACKAGE",
	Short: "Stage an auxiliary file into a package's References",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		if err := ctx.AddFile(args[0], flagForce, staged); err != nil {
			sess.Close()
			return err
		}

		return runEdit(sess, ctx, args[1], staged)
	},
}

func init() {
	rootCmd.AddCommand(addFileCmd)
}
