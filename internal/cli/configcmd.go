package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbracewell/mango/config"
	"github.com/dbracewell/mango/resource"
)

// ConfigOptions holds flags for the config command.
type ConfigOptions struct {
	Conf []string
}

// NewConfigCommand creates the config command with its get subcommand.
func NewConfigCommand() *cobra.Command {
	opts := &ConfigOptions{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration files",
	}
	cmd.PersistentFlags().StringSliceVar(&opts.Conf, "conf", nil, "configuration file (repeatable, later files win)")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Resolve a key across the loaded configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, opts, args[0])
		},
	}
	cmd.AddCommand(get)

	return cmd
}

func runConfigGet(cmd *cobra.Command, opts *ConfigOptions, key string) error {
	if len(opts.Conf) == 0 {
		return fmt.Errorf("at least one --conf file is required")
	}
	cfg := config.New()
	for _, path := range opts.Conf {
		if err := cfg.Load(cmd.Context(), resource.File(path)); err != nil {
			return err
		}
	}
	v, err := cfg.Get(key).AsString()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
