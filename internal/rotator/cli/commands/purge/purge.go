package purge

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"retoken/internal/rotator/cli/commands"
	"retoken/internal/rotator/cli/confirm"
	"retoken/internal/rotator/cli/options"
	"retoken/internal/rotator/models"
)

// purgeOptions type is used to describe 'purge' command options.
type purgeOptions struct {
	confirm       confirm.Confirm
	runConfigPath string
	driver        string
	dsn           string
	force         bool
}

// NewPurgeCommand creates 'purge' command for CLI.
func NewPurgeCommand(cliOpts *options.CliOptions) *cobra.Command {
	opts := &purgeOptions{}

	cmd := &cobra.Command{
		Use:                   "purge [FLAGS] [PATH]",
		Short:                 "Removes every ticket from the database",
		Args:                  commands.RequiresMaxArgs(1),
		DisableFlagsInUseLine: true,
		PreRun: func(_ *cobra.Command, args []string) {
			opts.confirm = cliOpts.Confirm()

			if len(args) > 0 {
				opts.runConfigPath = args[0]
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runPurge(cmd.Context(), opts)
			if err != nil {
				return errors.WithMessage(err, "failed to purge tickets")
			}

			return nil
		},
	}

	cmd.SetOut(cliOpts.Out())

	setupFlags(cmd.Flags(), opts)

	return cmd
}

// setupFlags sets flags for 'purge' command and bind them to purgeOptions fields.
func setupFlags(flags *pflag.FlagSet, opts *purgeOptions) {
	flags.StringVarP(
		&opts.driver,
		commands.DatabaseDriverFlag,
		commands.DatabaseDriverShortFlag,
		commands.DatabaseDriverDefaultValue,
		commands.DatabaseDriverUsage,
	)

	flags.StringVarP(
		&opts.dsn,
		commands.DatabaseDSNFlag,
		commands.DatabaseDSNShortFlag,
		commands.DatabaseDSNDefaultValue,
		commands.DatabaseDSNUsage,
	)

	flags.BoolVarP(
		&opts.force,
		commands.ForcePurgeFlag,
		commands.ForcePurgeShortFlag,
		commands.ForcePurgeDefaultValue,
		commands.ForcePurgeUsage,
	)
}

// runPurge executes a `purge` command.
func runPurge(ctx context.Context, opts *purgeOptions) error {
	cfg := &models.RunConfig{}

	if opts.runConfigPath != "" {
		err := models.DecodeFile(opts.runConfigPath, cfg)
		if err != nil {
			return errors.WithMessagef(err, "failed to parse run config file %q", opts.runConfigPath)
		}
	}

	if opts.driver != "" {
		cfg.Database.Driver = opts.driver
	}

	if opts.dsn != "" {
		cfg.Database.DSN = opts.dsn
	}

	err := cfg.PostProcess()
	if err != nil {
		return err
	}

	if !opts.force {
		confirmed, err := opts.confirm(ctx, "Remove all tickets?")
		if err != nil {
			return err
		}

		if !confirmed {
			slog.Info("purge canceled")

			return nil
		}
	}

	ticketStore, err := commands.OpenStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer ticketStore.Close()

	removed, err := ticketStore.PurgeTickets(ctx)
	if err != nil {
		return err
	}

	slog.Info("purge finished", slog.Int64("removed", removed))

	return nil
}
