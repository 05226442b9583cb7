package seed

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"retoken/internal/rotator/cli/commands"
	"retoken/internal/rotator/cli/options"
	"retoken/internal/rotator/models"
)

// seedOptions type is used to describe 'seed' command options.
type seedOptions struct {
	runConfigPath string
	driver        string
	dsn           string
	count         uint64
	pageSize      uint64
}

// NewSeedCommand creates 'seed' command for CLI.
func NewSeedCommand(cliOpts *options.CliOptions) *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:                   "seed [FLAGS] [PATH]",
		Short:                 "Fills the database with freshly generated tickets",
		Args:                  commands.RequiresMaxArgs(1),
		DisableFlagsInUseLine: true,
		PreRun: func(_ *cobra.Command, args []string) {
			if len(args) > 0 {
				opts.runConfigPath = args[0]
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runSeed(cmd.Context(), opts)
			if err != nil {
				return errors.WithMessage(err, "failed to seed tickets")
			}

			return nil
		},
	}

	cmd.SetOut(cliOpts.Out())

	setupFlags(cmd.Flags(), opts)

	return cmd
}

// setupFlags sets flags for 'seed' command and bind them to seedOptions fields.
func setupFlags(flags *pflag.FlagSet, opts *seedOptions) {
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

	flags.Uint64VarP(
		&opts.count,
		commands.SeedCountFlag,
		commands.SeedCountShortFlag,
		commands.SeedCountDefaultValue,
		commands.SeedCountUsage,
	)

	flags.Uint64VarP(
		&opts.pageSize,
		commands.PageSizeFlag,
		commands.PageSizeShortFlag,
		commands.PageSizeDefaultValue,
		commands.PageSizeUsage,
	)
}

// runSeed executes a `seed` command.
func runSeed(ctx context.Context, opts *seedOptions) error {
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

	if opts.pageSize != 0 {
		cfg.PageSize = opts.pageSize
	}

	err := cfg.PostProcess()
	if err != nil {
		return err
	}

	ticketStore, err := commands.OpenStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer ticketStore.Close()

	slog.Info("seeding tickets", slog.Uint64("count", opts.count))

	tokens := make([]uuid.UUID, 0, cfg.PageSize)

	var inserted uint64

	for inserted < opts.count {
		batchSize := min(cfg.PageSize, opts.count-inserted)

		tokens = tokens[:0]
		for range batchSize {
			tokens = append(tokens, uuid.New())
		}

		if err := ticketStore.InsertTokens(ctx, tokens); err != nil {
			return err
		}

		inserted += batchSize
	}

	slog.Info("seeding finished", slog.Uint64("inserted", inserted))

	return nil
}
