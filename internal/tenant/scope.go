package tenant

import "gorm.io/gorm"

// Scope membatasi query ke satu organisasi (root CEO).
func Scope(ceoID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("ceo_id = ?", ceoID)
	}
}
