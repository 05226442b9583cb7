package general

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"retoken/internal/rotator/store"
)

func TestTokenMutatorReplacesToken(t *testing.T) {
	mutate := NewTokenMutator()

	original := store.Ticket{ID: 42, Token: uuid.New()}
	mutated := mutate(original)

	require.Equal(t, original.ID, mutated.ID)
	require.NotEqual(t, original.Token, mutated.Token)
	require.NotEqual(t, uuid.Nil, mutated.Token)
}

func TestTokenMutatorReapplySafe(t *testing.T) {
	mutate := NewTokenMutator()

	ticket := store.Ticket{ID: 1, Token: uuid.New()}

	// double-processing a page re-mutates already mutated records; each
	// application must still yield a fresh valid token
	once := mutate(ticket)
	twice := mutate(once)

	require.NotEqual(t, once.Token, twice.Token)
	require.NotEqual(t, uuid.Nil, twice.Token)
	require.Equal(t, ticket.ID, twice.ID)
}

func TestTokenMutatorDistinctAcrossRecords(t *testing.T) {
	mutate := NewTokenMutator()

	seen := make(map[uuid.UUID]struct{})

	for id := int64(1); id <= 1000; id++ {
		mutated := mutate(store.Ticket{ID: id})

		_, duplicate := seen[mutated.Token]
		require.False(t, duplicate)

		seen[mutated.Token] = struct{}{}
	}
}
