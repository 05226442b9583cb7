package bar

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"retoken/internal/rotator/cli/progress"
	"retoken/internal/rotator/usecase"
)

// Verify interface compliance in compile time.
var _ progress.Tracker = (*ProgressBarManager)(nil)

// ProgressBarManager type is implementation of progress.Tracker that renders
// a single continuously overwritten terminal line.
type ProgressBarManager struct {
	progressManager *mpb.Progress
	bar             *mpb.Bar

	mutex   sync.Mutex
	current usecase.Progress
}

// NewProgressBarManager creates ProgressBarManager object.
func NewProgressBarManager(ctx context.Context) progress.Tracker {
	return &ProgressBarManager{
		progressManager: mpb.NewWithContext(ctx),
	}
}

// Start adds the run line to the manager.
func (p *ProgressBarManager) Start(total uint64) {
	if p.bar != nil {
		return
	}

	p.mutex.Lock()
	p.current = usecase.Progress{Total: total, Remaining: usecase.RemainingUnknown}
	p.mutex.Unlock()

	// the bar itself is invisible, the decorator carries the whole line
	bar, err := p.progressManager.Add(
		int64(total),
		mpb.NopStyle().Build(),
		mpb.PrependDecorators(
			decor.Any(func(decor.Statistics) string { return p.line() }),
		),
	)
	if err != nil && errors.Is(err, mpb.DoneError) {
		slog.Error("failed to add progress bar", slog.String("error", err.Error()))

		return
	}

	p.bar = bar

	if total == 0 {
		p.bar.SetTotal(-1, true)
	}
}

// UpdateProgress updates the displayed run progress.
func (p *ProgressBarManager) UpdateProgress(progress usecase.Progress) {
	if p.bar == nil {
		return
	}

	p.mutex.Lock()
	p.current = progress
	p.mutex.Unlock()

	p.bar.SetCurrent(int64(progress.Done))
}

// Wait waits for the run line to complete.
func (p *ProgressBarManager) Wait() {
	p.progressManager.Wait()
}

// Write writes to stdout.
func (p *ProgressBarManager) Write(b []byte) (int, error) {
	return p.progressManager.Write(b) //nolint:wrapcheck
}

func (p *ProgressBarManager) line() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return progress.Line(p.current)
}
