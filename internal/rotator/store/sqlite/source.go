package sqlite

import (
	"context"
	"database/sql"
	"math"

	"github.com/google/uuid"
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
	db *sql.DB
}

func (s *offsetSource) FetchPage(ctx context.Context, page paging.Page, yield func(store.Ticket) error) error {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, token FROM tickets ORDER BY id LIMIT ? OFFSET ?`,
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
	db       *sql.DB
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

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, token FROM tickets WHERE id > ? ORDER BY id LIMIT ?`,
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

	err := s.db.QueryRowContext(
		ctx,
		`SELECT id FROM tickets ORDER BY id LIMIT 1 OFFSET ?`,
		page.Offset-1,
	).Scan(&id)
	if err != nil {
		return 0, errors.WithMessagef(err, "failed to find boundary for page %d", page.Index)
	}

	return id, nil
}

func scanRows(rows *sql.Rows, page paging.Page, yield func(store.Ticket) error, lastID *int64) error {
	for rows.Next() {
		var (
			id       int64
			tokenStr string
		)

		if err := rows.Scan(&id, &tokenStr); err != nil {
			return errors.WithMessagef(err, "failed to scan row of page %d", page.Index)
		}

		token, err := uuid.Parse(tokenStr)
		if err != nil {
			return errors.WithMessagef(err, "failed to parse token of ticket %d", id)
		}

		if err := yield(store.Ticket{ID: id, Token: token}); err != nil {
			return err
		}

		if lastID != nil {
			*lastID = id
		}
	}

	if err := rows.Err(); err != nil {
		return errors.WithMessagef(err, "failed to stream page %d", page.Index)
	}

	return nil
}
