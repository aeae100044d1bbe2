package tasks

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"todoapp/internal/domain"
)

// Service contains the task CRUD logic. Tenancy is enforced here: every
// operation is scoped to the calling user.
type Service struct {
	tasks TaskRepositoryInterface
}

func NewService(tasks TaskRepositoryInterface) *Service {
	return &Service{tasks: tasks}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateTaskRequest) (*domain.Task, error) {
	task := &domain.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Done = req.Done

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.tasks.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}
