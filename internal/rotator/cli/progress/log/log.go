package log

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"retoken/internal/rotator/cli/progress"
	"retoken/internal/rotator/usecase"
)

// Verify interface compliance in compile time.
var _ progress.Tracker = (*ProgressLogManager)(nil)

// ProgressLogManager type is implementation of progress.Tracker that using logger.
type ProgressLogManager struct {
	ctx context.Context //nolint:containedctx

	mutex    sync.Mutex
	total    uint64
	finished bool
	done     chan struct{}
}

// NewProgressLogManager creates ProgressLogManager object.
func NewProgressLogManager(ctx context.Context) progress.Tracker {
	return &ProgressLogManager{
		ctx:  ctx,
		done: make(chan struct{}),
	}
}

// Start begins tracking the run.
func (p *ProgressLogManager) Start(total uint64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.total = total

	if total == 0 {
		p.finish()
	}
}

// UpdateProgress logs one progress update.
func (p *ProgressLogManager) UpdateProgress(prog usecase.Progress) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.finished {
		return
	}

	slog.Info(progress.Line(prog))

	if prog.Done >= p.total {
		p.finish()
	}
}

// Wait waits for the run to complete.
func (p *ProgressLogManager) Wait() {
	select {
	case <-p.ctx.Done():
	case <-p.done:
	}
}

// Write writes to default stdout.
func (p *ProgressLogManager) Write(b []byte) (int, error) {
	return os.Stdout.Write(b)
}

func (p *ProgressLogManager) finish() {
	if !p.finished {
		p.finished = true
		close(p.done)
	}
}
