package tasks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todoapp/internal/domain"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, userID, id int64) (*domain.Task, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) Delete(ctx context.Context, userID, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func TestService_Create(t *testing.T) {
	repo := new(mockTaskRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo)

	task, err := service.Create(context.Background(), 7, CreateTaskRequest{
		Title:       "Buy milk",
		Description: "2 liters",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), task.UserID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.False(t, task.Done)
}

func TestService_Get_NotFoundMapsError(t *testing.T) {
	repo := new(mockTaskRepo)
	repo.On("GetByID", mock.Anything, int64(7), int64(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo)

	_, err := service.Get(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestService_Update(t *testing.T) {
	repo := new(mockTaskRepo)
	existing := &domain.Task{ID: 3, UserID: 7, Title: "old", Done: false}

	repo.On("GetByID", mock.Anything, int64(7), int64(3)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	service := NewService(repo)

	task, err := service.Update(context.Background(), 7, 3, UpdateTaskRequest{
		Title: "new",
		Done:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, "new", task.Title)
	assert.True(t, task.Done)
	repo.AssertExpectations(t)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := new(mockTaskRepo)
	repo.On("Delete", mock.Anything, int64(7), int64(99)).Return(false, nil)

	service := NewService(repo)

	err := service.Delete(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
