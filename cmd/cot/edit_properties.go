package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/threatflux/cot/internal/editops"
)

var editPropertiesArgs []string

var editPropertiesCmd = &cobra.Command{
	Use:   "edit-properties PACKAGE",
	Short: "Set ProductSection property values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		edits := make([]editops.PropertyEdit, 0, len(editPropertiesArgs))
		for _, raw := range editPropertiesArgs {
			edits = append(edits, parsePropertyEdit(raw))
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

		if err := ctx.EditProperties(edits); err != nil {
			sess.Close()
			return err
		}

		return runEdit(sess, ctx, args[0], map[string]string{})
	},
}

func init() {
	editPropertiesCmd.Flags().StringArrayVarP(&editPropertiesArgs, "property", "p", nil, "key=value to set, key= to set an empty value, or bare key to clear it; repeatable")
	rootCmd.AddCommand(editPropertiesCmd)
}

// parsePropertyEdit distinguishes "key=value" (ValueSet, Value set)
// from a bare "key" (ValueSet false, clears the value).
func parsePropertyEdit(raw string) editops.PropertyEdit {
	key, value, hasEquals := strings.Cut(raw, "=")
	return editops.PropertyEdit{Key: key, Value: value, ValueSet: hasEquals}
}
