package general

import (
	"time"

	"retoken/internal/rotator/usecase"
)

// Estimator produces the percent-complete and time-remaining figures shown
// to the user. Per-page timing is noisy, so the displayed remaining time is
// monotone non-increasing: a new estimate is accepted only when it is lower
// than the current one. The number under-reacts to pages that get slower,
// which is the intended trade-off: it stays stable and never balloons
// because of a single slow page.
type Estimator struct {
	totalRows uint64
	pageSize  uint64
	displayed time.Duration
}

// NewEstimator function creates Estimator object.
func NewEstimator(totalRows, pageSize uint64) *Estimator {
	return &Estimator{
		totalRows: totalRows,
		pageSize:  pageSize,
		displayed: usecase.RemainingUnknown,
	}
}

// Observe records the timing of one committed page and returns the updated
// progress figures.
func (e *Estimator) Observe(rowsProcessed uint64, elapsed time.Duration) usecase.Progress {
	remainingRows := uint64(0)
	if rowsProcessed < e.totalRows {
		remainingRows = e.totalRows - rowsProcessed
	}

	estimated := time.Duration(float64(elapsed) * float64(remainingRows) / float64(e.pageSize))

	if estimated < e.displayed {
		e.displayed = estimated
	}

	return usecase.Progress{
		Done:      rowsProcessed,
		Total:     e.totalRows,
		Remaining: e.displayed,
	}
}
