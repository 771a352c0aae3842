// Package main provides the quickrelu command: it runs the quick ReLU
// kernels on the available backends and checks them against the host
// reference.
package main

import (
	"flag"
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

const version = "v0.1.0"

// NewCLI builds the root command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "quickrelu",
		Short:         "Quick ReLU activation kernels",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if show, _ := cmd.Flags().GetBool("version"); show {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().Bool("version", false, "Show version information")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run:   versionHandler,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newEvalCmd(),
		newDevicesCmd(),
		versionCmd,
	)

	return rootCmd
}

func versionHandler(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "quickrelu version %s\n", version)
}

func main() {
	if err := NewCLI().Execute(); err != nil {
		klog.Exitf("%+v", err)
	}
	klog.Flush()
}
