package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"retoken/internal/rotator/usecase"
)

// Verify interface compliance in compile time.
var _ usecase.UseCase = (*UseCase)(nil)

// UseCase is a mock implementation of the usecase.UseCase interface.
type UseCase struct {
	mock.Mock
}

func NewUseCase(t interface {
	mock.TestingT
	Cleanup(func())
},
) *UseCase {
	m := &UseCase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *UseCase) Setup() error {
	args := m.Called()

	return args.Error(0)
}

func (m *UseCase) CreateTask(ctx context.Context, config usecase.TaskConfig) (string, error) {
	args := m.Called(ctx, config)

	return args.String(0), args.Error(1)
}

func (m *UseCase) GetProgress(taskID string) (usecase.Progress, error) {
	args := m.Called(taskID)

	return args.Get(0).(usecase.Progress), args.Error(1) //nolint:forcetypeassert
}

func (m *UseCase) GetResult(taskID string) (bool, error) {
	args := m.Called(taskID)

	return args.Bool(0), args.Error(1)
}

func (m *UseCase) WaitResult(taskID string) error {
	args := m.Called(taskID)

	return args.Error(0)
}

func (m *UseCase) Teardown() error {
	args := m.Called()

	return args.Error(0)
}
