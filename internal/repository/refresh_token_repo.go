package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"todoapp/internal/domain"
)

// RefreshTokenRepository provides DB access to the refresh-token ledger.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MarkUsed flips is_used on a single row, conditionally: the row must still
// be unused and unrevoked. Returns false when the condition did not hold,
// which is how two concurrent redemptions of the same token are serialized:
// only one UPDATE can match.
func (r *RefreshTokenRepository) MarkUsed(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND is_used = ? AND is_revoked = ?", id, false, false).
		Update("is_used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RevokeByToken is the administrative kill switch for one ledger row.
// Revocation is monotonic; a no-op on already-revoked rows.
func (r *RefreshTokenRepository) RevokeByToken(ctx context.Context, token string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("token = ? AND is_revoked = ?", token, false).
		Update("is_revoked", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *RefreshTokenRepository) RevokeByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
}

// DeleteExpired removes rows whose validity window closed before the cutoff.
// Only the ops cleanup job calls this; the refresh flow never deletes.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
