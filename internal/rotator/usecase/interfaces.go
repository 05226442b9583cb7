package usecase

import (
	"context"
)

// UseCase interface implementation should run token regeneration tasks and
// report their progress.
type UseCase interface {
	// Setup function should configure some use case parameters.
	Setup() error
	// CreateTask function should start a regeneration task and return its ID.
	CreateTask(ctx context.Context, config TaskConfig) (string, error)
	// GetProgress should return progress of the task.
	GetProgress(taskID string) (Progress, error)
	// GetResult should return task status (completed or not) and an error if necessary.
	GetResult(taskID string) (bool, error)
	// WaitResult should wait for task completion and return its error if any.
	WaitResult(taskID string) error
	// Teardown function should wait for all running tasks to finish.
	Teardown() error
}
