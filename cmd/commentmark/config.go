package main

import (
	"github.com/spf13/cobra"

	"github.com/phyten/commentmark/internal/config"
)

func (a *app) configCmd() *cobra.Command {
	var (
		flags  engineFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			layer, err := flags.layer(cmd.Flags())
			if err != nil {
				return err
			}
			settings, err := a.settings(cmd.Context(), layer)
			if err != nil {
				return err
			}
			if settings, err = flags.addTokens(settings); err != nil {
				return err
			}
			out, err := config.Marshal(settings.ToConfig(), format)
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&format, "format", "yaml", "yaml, toml or json")
	flags.bindScan(fs)
	flags.bindOutput(fs)
	flags.bindTokens(fs)
	return cmd
}
