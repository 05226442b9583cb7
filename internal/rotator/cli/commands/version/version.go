package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"retoken/internal/rotator/cli/commands"
	"retoken/internal/rotator/cli/options"
)

// NewVersionCommand creates 'version' command for CLI.
func NewVersionCommand(cliOpts *options.CliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "version",
		Short:                 "Show retoken version",
		Args:                  commands.NoArgs,
		DisableFlagsInUseLine: true,
		Run: func(cmd *cobra.Command, _ []string) {
			versionPrompt := "retoken version " + cliOpts.Version()

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionPrompt)
		},
	}

	cmd.SetOut(cliOpts.Out())

	return cmd
}
