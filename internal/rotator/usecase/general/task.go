package general

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"retoken/internal/rotator/checkpoint"
	"retoken/internal/rotator/common"
	"retoken/internal/rotator/models"
	"retoken/internal/rotator/paging"
	"retoken/internal/rotator/store"
	"retoken/internal/rotator/usecase"
)

const TTL = 5 * time.Minute

// Task type is one regeneration run: it owns the page loop, wires the page
// cursor, mutator, batch writer, estimator and checkpoint store together,
// and is the unit that reacts to interruption.
type Task struct {
	ID          string
	cfg         *models.RunConfig
	store       store.Store
	checkpoints checkpoint.Store
	restart     bool
	mutate      Mutator

	runMutex    *sync.Mutex
	statusMutex *sync.RWMutex
	state       runState
	progress    usecase.Progress
	finished    bool
	error       error
}

// NewTask function creates context for one regeneration run.
func NewTask(cfg usecase.TaskConfig) (*Task, error) {
	if cfg.RunConfig == nil {
		return nil, errors.New("run config is required")
	}

	if cfg.Store == nil {
		return nil, errors.New("ticket store is required")
	}

	if cfg.Checkpoints == nil {
		return nil, errors.New("checkpoint store is required")
	}

	return &Task{
		ID:          uuid.NewString(),
		cfg:         cfg.RunConfig,
		store:       cfg.Store,
		checkpoints: cfg.Checkpoints,
		restart:     cfg.Restart,
		mutate:      NewTokenMutator(),
		runMutex:    &sync.Mutex{},
		statusMutex: &sync.RWMutex{},
		state:       stateInit,
		progress:    usecase.Progress{Remaining: usecase.RemainingUnknown},
	}, nil
}

// RunTask function runs the page loop asynchronously.
func (t *Task) RunTask(ctx context.Context, callback func()) {
	started := make(chan struct{})

	go func() {
		t.runMutex.Lock()
		defer t.runMutex.Unlock()

		t.statusMutex.Lock()
		t.finished = false
		t.error = nil
		t.statusMutex.Unlock()

		started <- struct{}{}

		err := t.run(ctx)

		t.statusMutex.Lock()
		t.finished = true
		t.error = err
		t.statusMutex.Unlock()

		time.AfterFunc(TTL, callback)
	}()

	<-started
}

func (t *Task) GetProgress() usecase.Progress {
	t.statusMutex.RLock()
	defer t.statusMutex.RUnlock()

	return t.progress
}

func (t *Task) GetError() (bool, error) {
	t.statusMutex.RLock()
	defer t.statusMutex.RUnlock()

	return t.finished, t.error
}

func (t *Task) WaitError() error {
	t.runMutex.Lock()
	defer t.runMutex.Unlock()

	return t.error
}

// run drives the state machine for one invocation.
func (t *Task) run(ctx context.Context) error {
	t.setState(stateInit)

	totalRows, err := t.store.CountTickets(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to count tickets")
	}

	cursor, err := paging.NewCursor(totalRows, t.cfg.PageSize)
	if err != nil {
		return err
	}

	totalPages := cursor.TotalPages()

	t.setState(stateResuming)

	startPage := t.resumePoint(totalPages)

	t.setProgress(usecase.Progress{
		Done:      min((startPage-1)*t.cfg.PageSize, totalRows),
		Total:     totalRows,
		Remaining: usecase.RemainingUnknown,
	})

	slog.Info(
		"run started",
		slog.Uint64("total_rows", totalRows),
		slog.Uint64("total_pages", totalPages),
		slog.Uint64("start_page", startPage),
		slog.Uint64("page_size", t.cfg.PageSize),
	)

	t.setState(stateRunning)

	estimator := NewEstimator(totalRows, t.cfg.PageSize)
	source := t.store.NewPageSource(t.cfg.FetchStrategy)
	committed := startPage - 1

	var cause error

	for index := startPage; index <= totalPages; index++ {
		if common.CtxClosed(ctx) {
			cause = &InterruptedError{Committed: committed, TotalPages: totalPages}

			break
		}

		page, err := cursor.PageAt(index)
		if err != nil {
			cause = &PageFailedError{Page: index, Committed: committed, Err: err}

			break
		}

		began := time.Now()

		if err := t.processPage(ctx, source, page); err != nil {
			if common.CtxClosed(ctx) {
				cause = &InterruptedError{Committed: committed, TotalPages: totalPages}
			} else {
				cause = &PageFailedError{Page: index, Committed: committed, Err: err}
			}

			break
		}

		committed = index

		done := min(page.Offset+page.Limit, totalRows)
		t.setProgress(estimator.Observe(done, time.Since(began)))
	}

	if cause == nil {
		t.setState(stateDone)

		if err := t.checkpoints.Clear(totalPages); err != nil {
			return errors.WithMessage(err, "failed to clear checkpoint")
		}

		slog.Info("run finished", slog.Uint64("pages", totalPages))

		return nil
	}

	t.setState(stateCheckpointing)

	saveErr := t.checkpoints.Save(checkpoint.Checkpoint{
		LastCommittedPage: committed,
		TotalPages:        totalPages,
	})
	if saveErr != nil {
		slog.Error("failed to save checkpoint", slog.String("error", saveErr.Error()))
	}

	t.setState(stateInterrupted)

	slog.Warn(
		"run stopped",
		slog.Uint64("last_committed_page", committed),
		slog.Uint64("total_pages", totalPages),
	)

	return cause
}

// resumePoint decides the first page of this invocation based on the saved
// checkpoint. A checkpoint whose total page count disagrees with the fresh
// computation means the row count drifted between runs; it is stale and the
// run starts over.
func (t *Task) resumePoint(totalPages uint64) uint64 {
	if t.restart {
		return 1
	}

	cp, err := t.checkpoints.Load()
	if err != nil {
		slog.Warn("failed to load checkpoint, starting from scratch", slog.String("error", err.Error()))

		return 1
	}

	if cp == nil || cp.Done {
		return 1
	}

	if cp.TotalPages != totalPages || cp.LastCommittedPage > totalPages {
		slog.Warn(
			"discarding stale checkpoint",
			slog.Uint64("checkpoint_total_pages", cp.TotalPages),
			slog.Uint64("total_pages", totalPages),
			slog.Uint64("last_committed_page", cp.LastCommittedPage),
		)

		return 1
	}

	slog.Info("resuming from checkpoint", slog.Uint64("last_committed_page", cp.LastCommittedPage))

	return cp.LastCommittedPage + 1
}

// processPage fetches one page, mutates every record and commits the batch
// as a single unit. Fetch and commit each get the bounded retry treatment;
// anything that survives the retries escalates to the run level.
func (t *Task) processPage(ctx context.Context, source store.PageSource, page paging.Page) error {
	batch := make([]store.Ticket, 0, page.Limit)

	err := t.withRetry(ctx, "fetch", page.Index, func() error {
		batch = batch[:0]

		return source.FetchPage(ctx, page, func(ticket store.Ticket) error {
			batch = append(batch, t.mutate(ticket))

			return nil
		})
	})
	if err != nil {
		return errors.WithMessagef(err, "failed to fetch page %d", page.Index)
	}

	err = t.withRetry(ctx, "commit", page.Index, func() error {
		return t.store.CommitBatch(ctx, batch)
	})
	if err != nil {
		return errors.WithMessagef(err, "failed to commit page %d", page.Index)
	}

	return nil
}

// withRetry runs op up to the configured attempt count, with a fixed delay
// between attempts. Retrying stops early once the run context is canceled.
func (t *Task) withRetry(ctx context.Context, op string, page uint64, fn func() error) error {
	var err error

	for attempt := 1; attempt <= t.cfg.Retry.Attempts; attempt++ {
		err = fn()
		if err == nil || common.CtxClosed(ctx) {
			return err
		}

		if attempt < t.cfg.Retry.Attempts {
			slog.Warn(
				"transient store error, retrying",
				slog.String("op", op),
				slog.Uint64("page", page),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)

			time.Sleep(t.cfg.Retry.Delay)
		}
	}

	return err
}

func (t *Task) setState(state runState) {
	t.statusMutex.Lock()
	t.state = state
	t.statusMutex.Unlock()

	slog.Debug("run state changed", slog.String("state", state.String()))
}

func (t *Task) setProgress(progress usecase.Progress) {
	t.statusMutex.Lock()
	t.progress = progress
	t.statusMutex.Unlock()
}
