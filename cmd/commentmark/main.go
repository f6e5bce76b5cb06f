package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/phyten/commentmark/internal/config"
)

func main() {
	a := &app{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		getenv:  os.Getenv,
		environ: os.Environ(),
		fs:      afero.NewOsFs(),
	}
	if err := a.run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "commentmark:", err)
		os.Exit(1)
	}
}

// app is the process environment, swappable in tests.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	environ []string
	fs      afero.Fs

	configPath string
	logLevel   string
	repo       string
}

func (a *app) run(ctx context.Context, args []string) error {
	root := a.rootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}
	return nil
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "commentmark",
		Short:         "Highlight category markers and keywords in source comments",
		Version:       version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := a.logger()
			if err != nil {
				return err
			}
			cmd.SetContext(log.WithContext(cmd.Context()))
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default: search .commentmark.* upward, then XDG, then home)")
	pf.StringVar(&a.logLevel, "log-level", "", "trace, debug, info, warn or error (env "+config.EnvLogLevel+")")
	pf.StringVarP(&a.repo, "repo", "C", "", "repository root")

	root.AddCommand(a.scanCmd(), a.keysCmd(), a.configCmd(), a.versionCmd())
	return root
}

func (a *app) logger() (zerolog.Logger, error) {
	raw := strings.TrimSpace(a.logLevel)
	if raw == "" {
		raw = strings.TrimSpace(a.getenv(config.EnvLogLevel))
	}
	level := zerolog.WarnLevel
	if raw != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return zerolog.Nop(), errors.Errorf("log level: %w", err)
		}
		level = parsed
	}
	out := zerolog.ConsoleWriter{Out: a.stderr, NoColor: true, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version())
			return err
		},
	}
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "unknown"
	}
	return info.Main.Version
}
