package general

import (
	"github.com/google/uuid"

	"retoken/internal/rotator/store"
)

// Mutator maps one ticket to its mutated form, independent of paging and IO.
type Mutator func(store.Ticket) store.Ticket

// NewTokenMutator returns the mutator that replaces the ticket token with a
// freshly drawn random UUID. It is pure: re-applying it to an already
// rotated ticket just draws another unique token, so re-processing a page
// after a false-positive interruption is safe.
func NewTokenMutator() Mutator {
	return func(ticket store.Ticket) store.Ticket {
		ticket.Token = uuid.New()

		return ticket
	}
}
