package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"retoken/internal/rotator/cli/commands"
	"retoken/internal/rotator/cli/commands/retoken"
	"retoken/internal/rotator/cli/confirm"
	clierrors "retoken/internal/rotator/cli/errors"
	"retoken/internal/rotator/cli/options"
	"retoken/internal/rotator/logger/handlers"
)

// Cli type is used to describe retoken CLI.
type Cli struct {
	opts *options.CliOptions
	cmd  *cobra.Command
}

func NewCli(opts *options.CliOptions) *Cli {
	return &Cli{
		opts: opts,
		cmd:  retoken.NewRetokenCommand(opts),
	}
}

func (cli *Cli) MustSetup() {
	err := cli.handleAppFlags()
	if err != nil {
		_, _ = fmt.Fprintln(cli.cmd.OutOrStdout(), err.Error())

		os.Exit(1)
	}

	err = cli.initialize()
	if err != nil {
		_, _ = fmt.Fprintln(cli.cmd.OutOrStdout(), err.Error())

		os.Exit(1)
	}
}

func (cli *Cli) Run(ctx context.Context) error {
	var usageErr *clierrors.UsageError

	err := cli.cmd.ExecuteContext(ctx)
	if err != nil && errors.As(err, &usageErr) {
		_, _ = fmt.Fprintln(cli.cmd.OutOrStdout(), err.Error())

		os.Exit(1)
	}

	return err //nolint:wrapcheck
}

func (cli *Cli) Options() *options.CliOptions {
	return cli.opts
}

// handleAppFlags parses flags of root command before executing it.
func (cli *Cli) handleAppFlags() error {
	cmd := cli.cmd

	flags := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	flags.SetInterspersed(false)

	flags.AddFlagSet(cmd.Flags())
	flags.AddFlagSet(cmd.PersistentFlags())

	if err := flags.Parse(os.Args[1:]); err != nil {
		return commands.FlagErrorFunc(cmd, err)
	}

	return nil
}

// initialize initializes the retoken CLI, configuring it using config and flags.
func (cli *Cli) initialize() error {
	cliOpts := cli.opts

	appConfig := cliOpts.AppConfig()
	retokenOpts := cliOpts.RetokenOpts()

	// set tty mode
	if !*retokenOpts.NoTTY.Changed && !*retokenOpts.TTY.Changed {
		cliOpts.SetUseTTY(retokenOpts.TTY.Value)
	} else {
		cliOpts.SetUseTTY(*retokenOpts.TTY.Changed)
	}

	err := appConfig.ParseFromFile(retokenOpts.ConfigPath)
	if err != nil {
		return errors.WithMessage(err, "error during initializing cli")
	}

	// setup logger
	logLevel := slog.LevelInfo
	if retokenOpts.DebugMode {
		logLevel = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var logHandler slog.Handler

	if appConfig.LogFormat == "json" {
		logHandler = slog.NewJSONHandler(cliOpts.Out(), handlerOpts)
	} else {
		logHandler = handlers.NewTextHandler(cliOpts.Out(), handlerOpts)
	}

	slog.SetDefault(slog.New(logHandler))

	// setup confirmation prompt
	if cliOpts.UseTTY() {
		cliOpts.SetConfirm(confirm.BuildConfirmTTY(cliOpts.In(), cliOpts.Out()))
	} else {
		cliOpts.SetConfirm(confirm.BuildConfirmNoTTY(cliOpts.In(), cliOpts.Out()))
	}

	return nil
}
