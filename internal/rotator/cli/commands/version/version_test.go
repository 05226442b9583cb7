package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"retoken/internal/rotator/cli/options"
	"retoken/internal/rotator/cli/streams"
)

func TestNewVersionCommand(t *testing.T) {
	t.Helper()

	expected := "retoken version 1.0.0"
	out := new(bytes.Buffer)

	cliOpts := &options.CliOptions{}
	cliOpts.SetVersion("1.0.0")
	cliOpts.SetOut(streams.NewOut(out))

	cmd := NewVersionCommand(cliOpts)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.NoError(t, err)
	require.Equal(t, strings.TrimSpace(expected), strings.TrimSpace(out.String()))
}
