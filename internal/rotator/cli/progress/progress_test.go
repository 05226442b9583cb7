package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"retoken/internal/rotator/usecase"
)

func TestLine(t *testing.T) {
	type testCase struct {
		name     string
		progress usecase.Progress
		expected string
	}

	testCases := []testCase{
		{
			name:     "Before first sample",
			progress: usecase.Progress{Done: 0, Total: 1000, Remaining: usecase.RemainingUnknown},
			expected: "Progress: 0.0% Remain: --",
		},
		{
			name:     "Mid run",
			progress: usecase.Progress{Done: 300, Total: 1000, Remaining: 9 * time.Second},
			expected: "Progress: 30.0% Remain: 9s",
		},
		{
			name:     "Fractional percent",
			progress: usecase.Progress{Done: 333, Total: 1000, Remaining: 9500 * time.Millisecond},
			expected: "Progress: 33.3% Remain: 10s",
		},
		{
			name:     "Finished",
			progress: usecase.Progress{Done: 1000, Total: 1000, Remaining: 0},
			expected: "Progress: 100.0% Remain: 0s",
		},
	}

	testFunc := func(t *testing.T, tc testCase) {
		t.Helper()

		require.Equal(t, tc.expected, Line(tc.progress))
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) { testFunc(t, tc) })
	}
}
