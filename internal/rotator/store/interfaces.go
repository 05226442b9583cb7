package store

import (
	"context"

	"github.com/google/uuid"

	"retoken/internal/rotator/paging"
)

// Store interface implementation should give ordered, paginated read access
// to the tickets table and atomic batched writes of mutated tokens.
type Store interface {
	// CountTickets function should return the current number of rows.
	CountTickets(ctx context.Context) (uint64, error)
	// NewPageSource function should create a page reader for one run
	// using the selected fetch strategy.
	NewPageSource(strategy string) PageSource
	// CommitBatch function should persist all tickets of one page as a
	// single atomic unit. Partial application must not be observable.
	CommitBatch(ctx context.Context, batch []Ticket) error
	// InsertTokens function should bulk insert fresh rows with the given tokens.
	InsertTokens(ctx context.Context, tokens []uuid.UUID) error
	// PurgeTickets function should delete all rows and return how many were removed.
	PurgeTickets(ctx context.Context) (int64, error)
	// Close function should release the underlying connections.
	Close() error
}

// PageSource streams the rows of one page in ascending id order. The yield
// callback is invoked once per row; implementations must not buffer more
// than one page of rows at a time.
type PageSource interface {
	FetchPage(ctx context.Context, page paging.Page, yield func(Ticket) error) error
}
