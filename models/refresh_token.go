package models

import "time"

// RefreshToken disimpan per user, maksimal 5 token hidup; yang paling lama
// dihapus saat token baru diterbitkan.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	Token     string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

const MaxRefreshTokensPerUser = 5
