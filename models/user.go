package models

import "time"

type User struct {
	Model
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Email         string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password      string         `gorm:"type:varchar(255);not null" json:"-"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	VerifiedAt    *time.Time     `json:"verified_at,omitempty"`
	VerifyToken   *string        `gorm:"type:varchar(36);index" json:"-"`
	VerifyExpires *time.Time     `json:"-"`
	ResetToken    *string        `gorm:"type:varchar(36);index" json:"-"`
	ResetExpires  *time.Time     `json:"-"`
	ActiveRoleID  *uint          `json:"-"`
	ActiveRole    *Role          `gorm:"foreignKey:ActiveRoleID" json:"active_role,omitempty"`
	Roles         []Role         `gorm:"many2many:user_roles;" json:"roles,omitempty"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

// HasRole memeriksa apakah user memegang role dengan nama tertentu.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
