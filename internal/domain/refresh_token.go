package domain

import "time"

// RefreshToken is the ledger row backing one issued access token.
//
// Exactly one row exists per access token: JwtID mirrors the token's jti
// claim and is what binds the pair together at refresh time. Rows are never
// reactivated; IsUsed flips false to true at most once and IsRevoked never
// reverts. Expiry is logical: stale rows are rejected at read time, not
// deleted by the refresh flow.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	JwtID string `json:"jwt_id" gorm:"size:64;uniqueIndex;not null"`
	Token string `json:"-" gorm:"size:128;uniqueIndex;not null"`

	IsUsed    bool `json:"is_used" gorm:"not null;default:false"`
	IsRevoked bool `json:"is_revoked" gorm:"not null;default:false"`

	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
