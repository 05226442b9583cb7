package regenerate

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"retoken/internal/rotator/checkpoint"
	"retoken/internal/rotator/cli/commands"
	"retoken/internal/rotator/cli/options"
	"retoken/internal/rotator/cli/progress"
	"retoken/internal/rotator/cli/progress/bar"
	"retoken/internal/rotator/cli/progress/log"
	"retoken/internal/rotator/models"
	"retoken/internal/rotator/usecase"
)

// regenerateOptions type is used to describe 'regenerate' command options.
type regenerateOptions struct {
	useCase        usecase.UseCase
	runConfigPath  string
	driver         string
	dsn            string
	pageSize       uint64
	fetchStrategy  string
	checkpointPath string
	restart        bool
	useTTY         bool
}

// NewRegenerateCommand creates 'regenerate' command for CLI.
func NewRegenerateCommand(cliOpts *options.CliOptions) *cobra.Command {
	opts := &regenerateOptions{}

	cmd := &cobra.Command{
		Use:                   "regenerate [FLAGS] [PATH]",
		Short:                 "Regenerates token of every ticket in the database",
		Args:                  commands.RequiresMaxArgs(1),
		DisableFlagsInUseLine: true,
		PreRun: func(_ *cobra.Command, args []string) {
			opts.useCase = cliOpts.UseCase()
			opts.useTTY = cliOpts.UseTTY()

			if len(args) > 0 {
				opts.runConfigPath = args[0]
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			slog.Info("regeneration started", slog.String("version", cliOpts.Version()))

			err := runRegenerate(cmd.Context(), opts)
			if err != nil {
				return errors.WithMessage(err, "failed to regenerate tokens")
			}

			slog.Info("regeneration finished")

			return nil
		},
	}

	cmd.SetOut(cliOpts.Out())

	setupFlags(cmd.Flags(), opts)

	return cmd
}

// setupFlags sets flags for 'regenerate' command and bind them to regenerateOptions fields.
func setupFlags(flags *pflag.FlagSet, opts *regenerateOptions) {
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
		&opts.pageSize,
		commands.PageSizeFlag,
		commands.PageSizeShortFlag,
		commands.PageSizeDefaultValue,
		commands.PageSizeUsage,
	)

	flags.StringVarP(
		&opts.fetchStrategy,
		commands.FetchStrategyFlag,
		commands.FetchStrategyShortFlag,
		commands.FetchStrategyDefaultValue,
		commands.FetchStrategyUsage,
	)

	flags.StringVarP(
		&opts.checkpointPath,
		commands.CheckpointPathFlag,
		commands.CheckpointPathShortFlag,
		commands.CheckpointPathDefaultValue,
		commands.CheckpointPathUsage,
	)

	flags.BoolVarP(
		&opts.restart,
		commands.RestartFlag,
		commands.RestartShortFlag,
		commands.RestartDefaultValue,
		commands.RestartUsage,
	)
}

// buildRunConfig merges run config file values and command flags.
// Flags take precedence over file values.
func buildRunConfig(opts *regenerateOptions) (*models.RunConfig, error) {
	cfg := &models.RunConfig{}

	if opts.runConfigPath != "" {
		err := models.DecodeFile(opts.runConfigPath, cfg)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to parse run config file %q", opts.runConfigPath)
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

	if opts.fetchStrategy != "" {
		cfg.FetchStrategy = opts.fetchStrategy
	}

	if opts.checkpointPath != "" {
		cfg.CheckpointPath = opts.checkpointPath
	}

	err := cfg.PostProcess()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// runRegenerate executes a `regenerate` command.
func runRegenerate(ctx context.Context, opts *regenerateOptions) error {
	cfg, err := buildRunConfig(opts)
	if err != nil {
		return err
	}

	ticketStore, err := commands.OpenStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer ticketStore.Close()

	taskID, err := opts.useCase.CreateTask(ctx, usecase.TaskConfig{
		RunConfig:   cfg,
		Store:       ticketStore,
		Checkpoints: checkpoint.NewFileStore(afero.NewOsFs(), cfg.CheckpointPath),
		Restart:     opts.restart,
	})
	if err != nil {
		return err
	}

	var (
		finished atomic.Bool
		wg       sync.WaitGroup
	)

	startProgressTracking(ctx, opts.useCase, taskID, &finished, &wg, opts.useTTY)

	err = opts.useCase.WaitResult(taskID)

	finished.Store(true)

	if err == nil {
		wg.Wait()
	}

	return err
}

// startProgressTracking runs function to track progress of task
// by getting progress from usecase object and displaying it.
func startProgressTracking(
	ctx context.Context,
	uc usecase.UseCase,
	taskID string,
	finished *atomic.Bool,
	wg *sync.WaitGroup,
	useTTY bool,
) {
	const delay = 500 * time.Millisecond

	var tracker progress.Tracker

	if useTTY {
		tracker = bar.NewProgressBarManager(ctx)
	} else {
		tracker = log.NewProgressLogManager(ctx)
	}

	wg.Add(1)

	go func() {
		defer wg.Done()

		var (
			started    bool
			lastUpdate bool
		)

		for {
			if finished.Load() {
				lastUpdate = true
			}

			p, err := uc.GetProgress(taskID)
			if err != nil {
				slog.Error("error getting progress", slog.Any("taskID", taskID))
			}

			// total is unknown until the task has counted the table
			if !started && (p.Total > 0 || lastUpdate) {
				tracker.Start(p.Total)

				started = true
			}

			if started {
				tracker.UpdateProgress(p)
			}

			if lastUpdate {
				break
			}

			time.Sleep(delay)
		}

		tracker.Wait()
	}()
}
