package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"retoken/internal/rotator/models"
	"retoken/internal/rotator/store"
)

// Verify interface compliance in compile time.
var _ store.Store = (*Store)(nil)

// Store type is implementation of the ticket store backed by PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore function connects to PostgreSQL and makes sure the tickets
// table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse postgres DSN")
	}

	cfg.ConnConfig.RuntimeParams["application_name"] = "retoken"

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to connect to postgres")
	}

	s := &Store{pool: pool}

	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()

		return nil, err
	}

	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS tickets (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			token UUID NOT NULL
		)`

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return errors.WithMessage(err, "failed to create tickets table")
	}

	return nil
}

func (s *Store) CountTickets(ctx context.Context) (uint64, error) {
	var count uint64

	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count)
	if err != nil {
		return 0, errors.WithMessage(err, "failed to count tickets")
	}

	return count, nil
}

func (s *Store) NewPageSource(strategy string) store.PageSource {
	if strategy == models.StrategyKeyset {
		return &keysetSource{pool: s.pool}
	}

	return &offsetSource{pool: s.pool}
}

// CommitBatch sends all page updates as one pgx batch, which the server
// applies inside a single implicit transaction.
func (s *Store) CommitBatch(ctx context.Context, batch []store.Ticket) error {
	if len(batch) == 0 {
		return nil
	}

	b := &pgx.Batch{}

	for _, ticket := range batch {
		b.Queue(`UPDATE tickets SET token = $1 WHERE id = $2`, ticket.Token, ticket.ID)
	}

	if err := s.pool.SendBatch(ctx, b).Close(); err != nil {
		return errors.WithMessage(err, "failed to commit batch")
	}

	return nil
}

func (s *Store) InsertTokens(ctx context.Context, tokens []uuid.UUID) error {
	if len(tokens) == 0 {
		return nil
	}

	rows := make([][]any, len(tokens))
	for i, token := range tokens {
		rows[i] = []any{token}
	}

	_, err := s.pool.CopyFrom(
		ctx,
		pgx.Identifier{"tickets"},
		[]string{"token"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return errors.WithMessage(err, "failed to bulk insert tickets")
	}

	return nil
}

func (s *Store) PurgeTickets(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tickets`)
	if err != nil {
		return 0, errors.WithMessage(err, "failed to purge tickets")
	}

	return tag.RowsAffected(), nil
}

func (s *Store) Close() error {
	s.pool.Close()

	return nil
}
