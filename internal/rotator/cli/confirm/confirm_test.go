package confirm

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"retoken/internal/rotator/cli/streams"
)

func TestBuildConfirmNoTTY(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		expected bool
	}

	testCases := []testCase{
		{
			name:     "Yes",
			input:    "y\n",
			expected: true,
		},
		{
			name:     "Yes full word",
			input:    "yes\n",
			expected: true,
		},
		{
			name:     "No",
			input:    "n\n",
			expected: false,
		},
		{
			name:     "Empty input means no",
			input:    "\n",
			expected: false,
		},
		{
			name:     "Garbage then yes",
			input:    "what\ny\n",
			expected: true,
		},
	}

	testFunc := func(t *testing.T, tc testCase) {
		t.Helper()

		out := new(bytes.Buffer)
		ask := BuildConfirmNoTTY(streams.NewIn(strings.NewReader(tc.input)), out)

		confirmed, err := ask(context.Background(), "Remove all tickets?")
		require.NoError(t, err)
		require.Equal(t, tc.expected, confirmed)
		require.Contains(t, out.String(), "Remove all tickets? [y/N]: ")
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) { testFunc(t, tc) })
	}
}

func TestBuildConfirmNoTTYCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocked := &blockedReader{ch: make(chan struct{})}
	defer close(blocked.ch)

	ask := BuildConfirmNoTTY(streams.NewIn(blocked), new(bytes.Buffer))

	_, err := ask(ctx, "Remove all tickets?")
	require.ErrorIs(t, err, context.Canceled)
}

// blockedReader blocks every Read until its channel is closed.
type blockedReader struct {
	ch chan struct{}
}

func (r *blockedReader) Read([]byte) (int, error) {
	<-r.ch

	return 0, io.EOF
}
