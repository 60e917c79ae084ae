package controllers

import (
	"gorm.io/gorm"
)

// softDelete mengisi deleted_by lalu melakukan soft delete dalam satu transaksi.
func softDelete(db *gorm.DB, record interface{}, actor string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if actor != "" {
			if err := tx.Model(record).Update("deleted_by", actor).Error; err != nil {
				return err
			}
		}
		return tx.Delete(record).Error
	})
}
