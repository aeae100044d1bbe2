package auth

import (
	"context"

	"todoapp/internal/domain"
)

// UserRepositoryInterface covers only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepositoryInterface is the ledger storage for refresh tokens.
// MarkUsed must be an atomic conditional update: it returns false when the
// row was no longer unused+unrevoked at write time.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	MarkUsed(ctx context.Context, id int64) (bool, error)
	RevokeByToken(ctx context.Context, token string) (bool, error)
}
