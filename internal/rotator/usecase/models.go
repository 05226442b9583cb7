package usecase

import (
	"math"
	"time"

	"retoken/internal/rotator/checkpoint"
	"retoken/internal/rotator/models"
	"retoken/internal/rotator/store"
)

// RemainingUnknown is the initial ETA sentinel, displayed until the first
// page sample arrives.
const RemainingUnknown = time.Duration(math.MaxInt64)

// TaskConfig type is used to describe config for one regeneration task.
type TaskConfig struct {
	RunConfig   *models.RunConfig
	Store       store.Store
	Checkpoints checkpoint.Store
	// Restart discards any saved checkpoint and runs from the first page.
	Restart bool
}

// Progress type is used to represent progress of a run.
type Progress struct {
	Done      uint64
	Total     uint64
	Remaining time.Duration
}
