package progress

import (
	"fmt"

	"retoken/internal/rotator/common"
	"retoken/internal/rotator/usecase"
)

// Tracker interface implementation should display progress of a regeneration run.
type Tracker interface {
	// Start function should begin tracking a run over total rows.
	Start(total uint64)
	// UpdateProgress function should display progress of the tracked run.
	UpdateProgress(progress usecase.Progress)
	// Wait function should wait for the tracked run to complete.
	Wait()
}

// Line renders one progress update.
func Line(progress usecase.Progress) string {
	percent := common.GetPercentage(progress.Total, progress.Done)

	if progress.Remaining == usecase.RemainingUnknown {
		return fmt.Sprintf("Progress: %.1f%% Remain: --", percent)
	}

	return fmt.Sprintf("Progress: %.1f%% Remain: %.0fs", percent, progress.Remaining.Seconds())
}
