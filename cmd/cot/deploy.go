package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threatflux/cot/internal/helpers"
)

var (
	deployHost      string
	deployDatastore string
	deployNetwork   string
	deployVMName    string
	deployUsername  string
	deployPassword  string
)

// deployCmd is a thin wrapper around ovftool, the external deployment
// collaborator: cot builds the invocation from package and target
// flags and reports ovftool's own success/failure, matching the
// "external collaborator; contract only" scope for this command.
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy a package to a hypervisor via its own tooling",
}

var deployESXiCmd = &cobra.Command{
	Use:   "esxi PACKAGE",
	Short: "Deploy a package to an ESXi host via ovftool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		reg := newHelperRegistry(sess)

		ovftoolArgs := []string{}
		if deployVMName != "" {
			ovftoolArgs = append(ovftoolArgs, "--name="+deployVMName)
		}
		if deployDatastore != "" {
			ovftoolArgs = append(ovftoolArgs, "--datastore="+deployDatastore)
		}
		if deployNetwork != "" {
			ovftoolArgs = append(ovftoolArgs, "--network="+deployNetwork)
		}
		ovftoolArgs = append(ovftoolArgs, args[0], targetLocator())

		out, err := reg.Invoke(context.Background(), helpers.CapabilityOvftool, ovftoolArgs...)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func targetLocator() string {
	if deployUsername == "" {
		return "vi://" + deployHost
	}
	return "vi://" + deployUsername + ":" + deployPassword + "@" + deployHost
}

func init() {
	deployESXiCmd.Flags().StringVar(&deployHost, "host", "", "ESXi host or vCenter address")
	deployESXiCmd.Flags().StringVar(&deployDatastore, "datastore", "", "target datastore name")
	deployESXiCmd.Flags().StringVar(&deployNetwork, "network", "", "target network mapping")
	deployESXiCmd.Flags().StringVar(&deployVMName, "name", "", "name for the deployed VM")
	deployESXiCmd.Flags().StringVar(&deployUsername, "username", "", "ESXi/vCenter username")
	deployESXiCmd.Flags().StringVar(&deployPassword, "password", "", "ESXi/vCenter password")
	deployESXiCmd.MarkFlagRequired("host")

	deployCmd.AddCommand(deployESXiCmd)
	rootCmd.AddCommand(deployCmd)
}
