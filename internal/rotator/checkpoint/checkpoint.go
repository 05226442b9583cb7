package checkpoint

import (
	"time"
)

// Checkpoint is the durable record of the last page known to be fully
// committed. Done marks a completed run: a done checkpoint never triggers
// a resume.
type Checkpoint struct {
	LastCommittedPage uint64    `json:"last_committed_page"`
	TotalPages        uint64    `json:"total_pages"`
	Done              bool      `json:"done"`
	SavedAt           time.Time `json:"saved_at"`
}

// Store interface implementation should persist the resume point of a run.
//
// Load returns nil when no usable checkpoint exists; an absent or unparsable
// checkpoint is a normal condition, not an error.
type Store interface {
	// Load function should read the saved checkpoint, if any.
	Load() (*Checkpoint, error)
	// Save function should durably persist the checkpoint.
	Save(cp Checkpoint) error
	// Clear function should replace the checkpoint with the done sentinel.
	Clear(totalPages uint64) error
}
