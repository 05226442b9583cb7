package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"retoken/internal/rotator/models"
	"retoken/internal/rotator/paging"
	"retoken/internal/rotator/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(context.Background(), ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, s.Close()) })

	return s
}

func seedTickets(t *testing.T, s *Store, count int) []uuid.UUID {
	t.Helper()

	tokens := make([]uuid.UUID, 0, count)
	for range count {
		tokens = append(tokens, uuid.New())
	}

	require.NoError(t, s.InsertTokens(context.Background(), tokens))

	return tokens
}

func fetchAll(t *testing.T, source store.PageSource, page paging.Page) []store.Ticket {
	t.Helper()

	var rows []store.Ticket

	err := source.FetchPage(context.Background(), page, func(ticket store.Ticket) error {
		rows = append(rows, ticket)

		return nil
	})
	require.NoError(t, err)

	return rows
}

func TestInsertAndCount(t *testing.T) {
	s := newTestStore(t)

	count, err := s.CountTickets(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)

	seedTickets(t, s, 25)

	count, err = s.CountTickets(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(25), count)
}

func TestCommitBatch(t *testing.T) {
	s := newTestStore(t)
	seedTickets(t, s, 10)

	source := s.NewPageSource(models.StrategyOffset)
	before := fetchAll(t, source, paging.Page{Index: 1, Offset: 0, Limit: 10})
	require.Len(t, before, 10)

	batch := make([]store.Ticket, 0, len(before))
	for _, ticket := range before {
		ticket.Token = uuid.New()
		batch = append(batch, ticket)
	}

	require.NoError(t, s.CommitBatch(context.Background(), batch))

	after := fetchAll(t, s.NewPageSource(models.StrategyOffset), paging.Page{Index: 1, Offset: 0, Limit: 10})
	require.Len(t, after, 10)

	for i, ticket := range after {
		require.Equal(t, batch[i].ID, ticket.ID)
		require.Equal(t, batch[i].Token, ticket.Token)
		require.NotEqual(t, before[i].Token, ticket.Token)
	}
}

func TestPageSources(t *testing.T) {
	type testCase struct {
		name     string
		strategy string
	}

	testCases := []testCase{
		{name: "Offset pagination", strategy: models.StrategyOffset},
		{name: "Keyset pagination", strategy: models.StrategyKeyset},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			tokens := seedTickets(t, s, 25)

			source := s.NewPageSource(tc.strategy)

			var all []store.Ticket

			pages := []paging.Page{
				{Index: 1, Offset: 0, Limit: 10},
				{Index: 2, Offset: 10, Limit: 10},
				{Index: 3, Offset: 20, Limit: 5},
			}

			for _, page := range pages {
				rows := fetchAll(t, source, page)
				require.Len(t, rows, int(page.Limit))

				all = append(all, rows...)
			}

			require.Len(t, all, 25)

			for i, ticket := range all {
				require.Equal(t, int64(i+1), ticket.ID)
				require.Equal(t, tokens[i], ticket.Token)
			}
		})
	}
}

func TestKeysetResumesMidTable(t *testing.T) {
	s := newTestStore(t)
	tokens := seedTickets(t, s, 30)

	// first fetched page starts past the beginning, as a resumed run does
	source := s.NewPageSource(models.StrategyKeyset)

	rows := fetchAll(t, source, paging.Page{Index: 3, Offset: 20, Limit: 10})
	require.Len(t, rows, 10)

	for i, ticket := range rows {
		require.Equal(t, int64(21+i), ticket.ID)
		require.Equal(t, tokens[20+i], ticket.Token)
	}
}

func TestKeysetRetryRepeatsPage(t *testing.T) {
	s := newTestStore(t)
	seedTickets(t, s, 9)

	source := s.NewPageSource(models.StrategyKeyset)

	rows := fetchAll(t, source, paging.Page{Index: 1, Offset: 0, Limit: 3})
	require.Equal(t, []int64{1, 2, 3}, ticketIDs(rows))

	// page 2 breaks while streaming its first row
	streamErr := errors.New("stream broken")
	page := paging.Page{Index: 2, Offset: 3, Limit: 3}

	err := source.FetchPage(context.Background(), page, func(store.Ticket) error {
		return streamErr
	})
	require.ErrorIs(t, err, streamErr)

	// the retried fetch must repeat the page, not continue past the rows
	// streamed by the failed attempt
	rows = fetchAll(t, source, page)
	require.Equal(t, []int64{4, 5, 6}, ticketIDs(rows))

	rows = fetchAll(t, source, paging.Page{Index: 3, Offset: 6, Limit: 3})
	require.Equal(t, []int64{7, 8, 9}, ticketIDs(rows))
}

func ticketIDs(rows []store.Ticket) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, ticket := range rows {
		ids = append(ids, ticket.ID)
	}

	return ids
}

func TestPurgeTickets(t *testing.T) {
	s := newTestStore(t)
	seedTickets(t, s, 7)

	removed, err := s.PurgeTickets(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(7), removed)

	count, err := s.CountTickets(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)
}
