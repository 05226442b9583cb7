package general

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"retoken/internal/rotator/usecase"
)

func TestEstimatorStartsUnknown(t *testing.T) {
	estimator := NewEstimator(1000, 100)

	require.Equal(t, usecase.RemainingUnknown, estimator.displayed)
}

func TestEstimatorNeverIncreases(t *testing.T) {
	estimator := NewEstimator(1000, 100)

	samples := []struct {
		done    uint64
		elapsed time.Duration
	}{
		{100, 2 * time.Second},
		{200, time.Second},
		{300, 5 * time.Second}, // a slow page must not inflate the displayed value
		{400, time.Second},
		{500, 90 * time.Second},
		{600, time.Second},
	}

	previous := usecase.RemainingUnknown

	for _, sample := range samples {
		progress := estimator.Observe(sample.done, sample.elapsed)
		require.LessOrEqual(t, progress.Remaining, previous)

		previous = progress.Remaining
	}
}

func TestEstimatorValues(t *testing.T) {
	estimator := NewEstimator(1000, 100)

	// 900 rows remain at one second per 100-row page
	progress := estimator.Observe(100, time.Second)
	require.Equal(t, uint64(100), progress.Done)
	require.Equal(t, uint64(1000), progress.Total)
	require.Equal(t, 9*time.Second, progress.Remaining)

	progress = estimator.Observe(1000, time.Second)
	require.Equal(t, time.Duration(0), progress.Remaining)
}

func TestEstimatorLastPartialPage(t *testing.T) {
	estimator := NewEstimator(250, 100)

	progress := estimator.Observe(250, time.Second)
	require.Equal(t, time.Duration(0), progress.Remaining)
	require.Equal(t, uint64(250), progress.Done)
}
