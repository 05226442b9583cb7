package general

import (
	"fmt"
)

// InterruptedError reports a run that was asked to stop. The checkpoint
// points at Committed, the last page whose write was confirmed.
type InterruptedError struct {
	Committed  uint64
	TotalPages uint64
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("run interrupted, %d of %d pages committed", e.Committed, e.TotalPages)
}

// PageFailedError reports an unrecoverable failure on a single page after
// retries were exhausted.
type PageFailedError struct {
	Page      uint64
	Committed uint64
	Err       error
}

func (e *PageFailedError) Error() string {
	return fmt.Sprintf("page %d failed after %d pages committed: %v", e.Page, e.Committed, e.Err)
}

func (e *PageFailedError) Unwrap() error {
	return e.Err
}
