package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/database"
)

// Model adalah base untuk semua entity: primary key internal, UUID publik,
// soft delete, dan kolom audit yang diisi otomatis dari request context.
type Model struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	UUID      string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	CreatedBy string         `gorm:"type:varchar(255)" json:"created_by,omitempty"`
	UpdatedBy string         `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	DeletedBy string         `gorm:"type:varchar(255)" json:"-"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == "" {
		m.UUID = uuid.NewString()
	}
	if actor := database.Actor(tx.Statement.Context); actor != "" {
		m.CreatedBy = actor
		m.UpdatedBy = actor
	}
	return nil
}

func (m *Model) BeforeUpdate(tx *gorm.DB) error {
	if actor := database.Actor(tx.Statement.Context); actor != "" {
		m.UpdatedBy = actor
	}
	return nil
}
