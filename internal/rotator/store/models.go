package store

import (
	"github.com/google/uuid"
)

// Ticket is one row of the tickets table. ID is the immutable ordering key;
// Token is the regenerable unique value.
type Ticket struct {
	ID    int64
	Token uuid.UUID
}
