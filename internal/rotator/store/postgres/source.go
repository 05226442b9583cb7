package postgres

import (
	"context"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"retoken/internal/rotator/paging"
	"retoken/internal/rotator/store"
)

// Verify interface compliance in compile time.
var (
	_ store.PageSource = (*offsetSource)(nil)
	_ store.PageSource = (*keysetSource)(nil)
)

// offsetSource reads pages with a LIMIT/OFFSET window query.
type offsetSource struct {
	pool *pgxpool.Pool
}

func (s *offsetSource) FetchPage(ctx context.Context, page paging.Page, yield func(store.Ticket) error) error {
	rows, err := s.pool.Query(
		ctx,
		`SELECT id, token FROM tickets ORDER BY id LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset,
	)
	if err != nil {
		return errors.WithMessagef(err, "failed to fetch page %d", page.Index)
	}
	defer rows.Close()

	return scanRows(rows, page, yield, nil)
}

// keysetSource reads pages with an id range query, avoiding the linear
// OFFSET scan cost on large tables. The boundary id is seeded with a single
// offset probe when the run starts mid-table (resume), then maintained from
// the rows already streamed. The boundary advances only after a page streams
// completely, so a retried fetch repeats the same rows instead of skipping
// the ones yielded by the failed attempt.
type keysetSource struct {
	pool     *pgxpool.Pool
	afterID  int64
	nextPage uint64
}

func (s *keysetSource) FetchPage(ctx context.Context, page paging.Page, yield func(store.Ticket) error) error {
	afterID := s.afterID

	if s.nextPage != page.Index {
		boundary, err := s.boundaryBefore(ctx, page)
		if err != nil {
			return err
		}

		afterID = boundary
	}

	rows, err := s.pool.Query(
		ctx,
		`SELECT id, token FROM tickets WHERE id > $1 ORDER BY id LIMIT $2`,
		afterID, page.Limit,
	)
	if err != nil {
		return errors.WithMessagef(err, "failed to fetch page %d", page.Index)
	}
	defer rows.Close()

	lastID := afterID

	if err := scanRows(rows, page, yield, &lastID); err != nil {
		return err
	}

	s.afterID = lastID
	s.nextPage = page.Index + 1

	return nil
}

// boundaryBefore returns the id of the last row preceding the page.
func (s *keysetSource) boundaryBefore(ctx context.Context, page paging.Page) (int64, error) {
	if page.Offset == 0 {
		return math.MinInt64, nil
	}

	var id int64

	err := s.pool.QueryRow(
		ctx,
		`SELECT id FROM tickets ORDER BY id LIMIT 1 OFFSET $1`,
		page.Offset-1,
	).Scan(&id)
	if err != nil {
		return 0, errors.WithMessagef(err, "failed to find boundary for page %d", page.Index)
	}

	return id, nil
}

func scanRows(rows pgx.Rows, page paging.Page, yield func(store.Ticket) error, lastID *int64) error {
	for rows.Next() {
		var ticket store.Ticket

		if err := rows.Scan(&ticket.ID, &ticket.Token); err != nil {
			return errors.WithMessagef(err, "failed to scan row of page %d", page.Index)
		}

		if err := yield(ticket); err != nil {
			return err
		}

		if lastID != nil {
			*lastID = ticket.ID
		}
	}

	if err := rows.Err(); err != nil {
		return errors.WithMessagef(err, "failed to stream page %d", page.Index)
	}

	return nil
}
