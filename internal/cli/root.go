// Package cli implements the mango command line tool.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the mango CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mango",
		Short:         "Utilities over the mango library",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewConvertCommand())
	cmd.AddCommand(NewCountCommand())

	return cmd
}
