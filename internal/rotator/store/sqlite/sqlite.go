package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"retoken/internal/rotator/models"
	"retoken/internal/rotator/store"
)

// Verify interface compliance in compile time.
var _ store.Store = (*Store)(nil)

// Store type is implementation of the ticket store backed by an embedded
// sqlite database.
type Store struct {
	db *sql.DB
}

// NewStore function opens the sqlite database and makes sure the tickets
// table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to open sqlite database %q", dsn)
	}

	// page commits are transactional; a second connection would only
	// contend for the write lock
	db.SetMaxOpenConns(1)

	s := &Store{db: db}

	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()

		return nil, err
	}

	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS tickets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			token TEXT NOT NULL
		)`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return errors.WithMessage(err, "failed to create tickets table")
	}

	return nil
}

func (s *Store) CountTickets(ctx context.Context) (uint64, error) {
	var count uint64

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count)
	if err != nil {
		return 0, errors.WithMessage(err, "failed to count tickets")
	}

	return count, nil
}

func (s *Store) NewPageSource(strategy string) store.PageSource {
	if strategy == models.StrategyKeyset {
		return &keysetSource{db: s.db}
	}

	return &offsetSource{db: s.db}
}

// CommitBatch updates the tokens of one page inside a single transaction,
// so the page is applied all-or-nothing.
func (s *Store) CommitBatch(ctx context.Context, batch []store.Ticket) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WithMessage(err, "failed to begin batch transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `UPDATE tickets SET token = ? WHERE id = ?`)
	if err != nil {
		return errors.WithMessage(err, "failed to prepare token update")
	}
	defer stmt.Close()

	for _, ticket := range batch {
		if _, err := stmt.ExecContext(ctx, ticket.Token.String(), ticket.ID); err != nil {
			return errors.WithMessagef(err, "failed to update token for ticket %d", ticket.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.WithMessage(err, "failed to commit batch")
	}

	return nil
}

func (s *Store) InsertTokens(ctx context.Context, tokens []uuid.UUID) error {
	if len(tokens) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WithMessage(err, "failed to begin insert transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tickets (token) VALUES (?)`)
	if err != nil {
		return errors.WithMessage(err, "failed to prepare ticket insert")
	}
	defer stmt.Close()

	for _, token := range tokens {
		if _, err := stmt.ExecContext(ctx, token.String()); err != nil {
			return errors.WithMessage(err, "failed to insert ticket")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.WithMessage(err, "failed to commit inserts")
	}

	return nil
}

func (s *Store) PurgeTickets(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tickets`)
	if err != nil {
		return 0, errors.WithMessage(err, "failed to purge tickets")
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, errors.New(err.Error())
	}

	return removed, nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.New(err.Error())
	}

	return nil
}
