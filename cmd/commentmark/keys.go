package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/phyten/commentmark/internal/attrkey"
	"github.com/phyten/commentmark/internal/output"
	"github.com/phyten/commentmark/internal/termcolor"
)

func (a *app) keysCmd() *cobra.Command {
	var flags engineFlags
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the attribute key of every configured token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			layer, err := flags.layer(cmd.Flags())
			if err != nil {
				return err
			}
			settings, err := a.settings(ctx, layer)
			if err != nil {
				return err
			}
			if settings, err = flags.addTokens(settings); err != nil {
				return err
			}
			reg := attrkey.NewRegistry()
			reg.Refresh(settings.Snapshot())
			zerolog.Ctx(ctx).Debug().Int("keys", reg.Len()).Msg("keys registered")

			color, err := termcolor.Resolve(settings.Engine.Color, a.stdoutFile(), termcolor.EnvMap(a.environ))
			if err != nil {
				return err
			}
			return output.WriteKeys(a.stdout, settings.Engine.Output, reg.Entries(), color)
		},
	}
	flags.bindOutput(cmd.Flags())
	flags.bindTokens(cmd.Flags())
	return cmd
}
