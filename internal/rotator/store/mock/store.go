package mock

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"retoken/internal/rotator/paging"
	"retoken/internal/rotator/store"
)

// Verify interface compliance in compile time.
var _ store.Store = (*Store)(nil)

// Store type is an in-memory implementation of the ticket store used in
// tests. Hooks allow injecting failures per operation, and MaxPageRows
// records the largest row count ever buffered for one fetch, which is how
// tests pin the constant-memory property.
type Store struct {
	mutex   sync.Mutex
	tickets []store.Ticket
	nextID  int64

	CommitHook func(batch []store.Ticket) error
	FetchHook  func(page paging.Page) error

	Commits     int
	MaxPageRows uint64
}

// NewStore function creates Store object pre-filled with count tickets.
func NewStore(count int) *Store {
	s := &Store{nextID: 1}

	for range count {
		s.tickets = append(s.tickets, store.Ticket{ID: s.nextID, Token: uuid.New()})
		s.nextID++
	}

	return s
}

// Tickets returns a snapshot of all rows in id order.
func (s *Store) Tickets() []store.Ticket {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	snapshot := make([]store.Ticket, len(s.tickets))
	copy(snapshot, s.tickets)

	return snapshot
}

func (s *Store) CountTickets(_ context.Context) (uint64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return uint64(len(s.tickets)), nil
}

func (s *Store) NewPageSource(_ string) store.PageSource {
	return &pageSource{store: s}
}

func (s *Store) CommitBatch(_ context.Context, batch []store.Ticket) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.CommitHook != nil {
		if err := s.CommitHook(batch); err != nil {
			return err
		}
	}

	byID := make(map[int64]uuid.UUID, len(batch))
	for _, ticket := range batch {
		byID[ticket.ID] = ticket.Token
	}

	for i, ticket := range s.tickets {
		if token, ok := byID[ticket.ID]; ok {
			s.tickets[i].Token = token
		}
	}

	s.Commits++

	return nil
}

func (s *Store) InsertTokens(_ context.Context, tokens []uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, token := range tokens {
		s.tickets = append(s.tickets, store.Ticket{ID: s.nextID, Token: token})
		s.nextID++
	}

	return nil
}

func (s *Store) PurgeTickets(_ context.Context) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := int64(len(s.tickets))
	s.tickets = nil

	return removed, nil
}

func (s *Store) Close() error { return nil }

type pageSource struct {
	store *Store
}

func (p *pageSource) FetchPage(_ context.Context, page paging.Page, yield func(store.Ticket) error) error {
	p.store.mutex.Lock()

	if p.store.FetchHook != nil {
		if err := p.store.FetchHook(page); err != nil {
			p.store.mutex.Unlock()

			return err
		}
	}

	end := min(page.Offset+page.Limit, uint64(len(p.store.tickets)))

	window := make([]store.Ticket, 0, page.Limit)
	if page.Offset < end {
		window = append(window, p.store.tickets[page.Offset:end]...)
	}

	p.store.MaxPageRows = max(p.store.MaxPageRows, uint64(len(window)))
	p.store.mutex.Unlock()

	for _, ticket := range window {
		if err := yield(ticket); err != nil {
			return err
		}
	}

	return nil
}
