package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"todoapp/internal/domain"
)

var ErrDuplicateRole = errors.New("role already exists")

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRole
		}
		return err
	}
	return nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).Order("id").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *RoleRepository) AssignToUser(ctx context.Context, user *domain.User, role *domain.Role) error {
	return r.db.WithContext(ctx).Model(user).Association("Roles").Append(role)
}

func (r *RoleRepository) RemoveFromUser(ctx context.Context, user *domain.User, role *domain.Role) error {
	return r.db.WithContext(ctx).Model(user).Association("Roles").Delete(role)
}

func (r *RoleRepository) AddClaim(ctx context.Context, claim *domain.UserClaim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *RoleRepository) ListClaims(ctx context.Context, userID int64) ([]domain.UserClaim, error) {
	var claims []domain.UserClaim
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}
