package rbac

import (
	"context"

	"todoapp/internal/domain"
)

type UserRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type RoleRepositoryInterface interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	AssignToUser(ctx context.Context, user *domain.User, role *domain.Role) error
	RemoveFromUser(ctx context.Context, user *domain.User, role *domain.Role) error
	AddClaim(ctx context.Context, claim *domain.UserClaim) error
	ListClaims(ctx context.Context, userID int64) ([]domain.UserClaim, error)
}

// TokenRevoker is the administrative entry into the refresh-token ledger.
type TokenRevoker interface {
	Revoke(ctx context.Context, refreshToken string) error
}
