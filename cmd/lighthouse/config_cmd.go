package main

import (
	"github.com/Carmen-Shannon/lighthouse/assets"
	"github.com/Carmen-Shannon/lighthouse/engine/config"
	"github.com/spf13/cobra"
)

func newConfigCommand(opts *rootOptions) *cobra.Command {
	var example bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if example {
				_, err := cmd.OutOrStdout().Write(assets.ExampleConfig())
				return err
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			data, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&example, "example", false, "print the annotated example file instead")
	return cmd
}
