package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/phyten/commentmark/internal/engine"
	engineopts "github.com/phyten/commentmark/internal/engine/opts"
	"github.com/phyten/commentmark/internal/output"
	"github.com/phyten/commentmark/internal/progress"
	"github.com/phyten/commentmark/internal/termcolor"
)

func (a *app) scanCmd() *cobra.Command {
	var (
		flags              engineFlags
		showProgress, none bool
	)
	cmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "Report highlighted tokens in comments and keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := zerolog.Ctx(ctx)

			layer, err := flags.layer(cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) > 0 {
				paths := append(engineopts.SplitMulti(flags.paths), args...)
				layer.Engine.Paths = &paths
			}
			settings, err := a.settings(ctx, layer)
			if err != nil {
				return err
			}
			if settings, err = flags.addTokens(settings); err != nil {
				return err
			}

			opts := engineopts.Defaults(settings.Engine.Repo)
			settings.ApplyToOptions(&opts)
			opts.Fs = a.fs
			if progress.ShouldShow(showProgress, none) {
				opts.Progress = progress.NewAutoObserver(a.stderr, *log)
			}
			if err := engineopts.NormalizeAndValidate(&opts); err != nil {
				return err
			}

			res, err := engine.Run(ctx, opts)
			if err != nil {
				return err
			}
			for _, e := range res.Errors {
				log.Warn().Str("file", e.File).Str("stage", e.Stage).Msg(e.Message)
			}

			color, err := termcolor.Resolve(settings.Engine.Color, a.stdoutFile(), termcolor.EnvMap(a.environ))
			if err != nil {
				return err
			}
			return output.Write(a.stdout, settings.Engine.Output, res, output.TableOptions{
				Color:    color,
				Truncate: settings.Engine.Truncate,
			})
		},
	}
	fs := cmd.Flags()
	flags.bindScan(fs)
	flags.bindOutput(fs)
	flags.bindTokens(fs)
	fs.BoolVar(&showProgress, "progress", false, "always show progress on stderr")
	fs.BoolVar(&none, "no-progress", false, "never show progress")
	return cmd
}

// stdoutFile is nil unless stdout is a real file, which keeps color
// detection off for buffers.
func (a *app) stdoutFile() *os.File {
	f, _ := a.stdout.(*os.File)
	return f
}
