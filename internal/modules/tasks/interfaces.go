package tasks

import (
	"context"

	"todoapp/internal/domain"
)

// TaskRepositoryInterface is owner-scoped task storage. Every method takes
// the owning user id; rows belonging to other users behave as absent.
type TaskRepositoryInterface interface {
	Create(ctx context.Context, t *domain.Task) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, userID, id int64) (bool, error)
}
