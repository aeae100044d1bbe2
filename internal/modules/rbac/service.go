package rbac

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"todoapp/internal/domain"
	"todoapp/internal/repository"
)

// Service covers role and claim administration. It mutates assignments
// only; nothing here touches password hashes or token issuance.
type Service struct {
	users  UserRepositoryInterface
	roles  RoleRepositoryInterface
	tokens TokenRevoker
}

func NewService(users UserRepositoryInterface, roles RoleRepositoryInterface, tokens TokenRevoker) *Service {
	return &Service{users: users, roles: roles, tokens: tokens}
}

func (s *Service) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

func (s *Service) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	role := &domain.Role{Name: strings.TrimSpace(name)}
	if err := s.roles.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicateRole) {
			return nil, ErrRoleExists
		}
		return nil, err
	}
	return role, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) AssignRole(ctx context.Context, email, roleName string) error {
	user, role, err := s.lookup(ctx, email, roleName)
	if err != nil {
		return err
	}
	return s.roles.AssignToUser(ctx, user, role)
}

func (s *Service) RemoveRole(ctx context.Context, email, roleName string) error {
	user, role, err := s.lookup(ctx, email, roleName)
	if err != nil {
		return err
	}
	return s.roles.RemoveFromUser(ctx, user, role)
}

func (s *Service) UserRoles(ctx context.Context, email string) ([]string, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return user.RoleNames(), nil
}

func (s *Service) UserClaims(ctx context.Context, email string) ([]domain.UserClaim, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.roles.ListClaims(ctx, user.ID)
}

func (s *Service) AddClaim(ctx context.Context, req AddClaimRequest) (*domain.UserClaim, error) {
	user, err := s.getUser(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	claim := &domain.UserClaim{
		UserID: user.ID,
		Name:   req.Name,
		Value:  req.Value,
	}
	if err := s.roles.AddClaim(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// RevokeToken flags a refresh-token ledger row as revoked. The flag is
// monotonic; the row can never be redeemed afterwards.
func (s *Service) RevokeToken(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

func (s *Service) getUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) lookup(ctx context.Context, email, roleName string) (*domain.User, *domain.Role, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRoleNotFound
		}
		return nil, nil, err
	}

	return user, role, nil
}
