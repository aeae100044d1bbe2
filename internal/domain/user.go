package domain

import "time"

type User struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Username     string `json:"username" gorm:"size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`

	Roles []Role `json:"roles,omitempty" gorm:"many2many:user_roles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleNames flattens the preloaded role list for token claims.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

type Role struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// UserClaim is an arbitrary name/value pair attached to a user by an
// administrator.
type UserClaim struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Name  string `json:"name" gorm:"size:128;not null"`
	Value string `json:"value" gorm:"size:255;not null"`

	CreatedAt time.Time `json:"created_at"`
}
