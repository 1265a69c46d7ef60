package companyprofile

import (
	"time"

	"github.com/google/uuid"
)

// CompanyVision adalah singleton per organisasi: satu baris per ceo_id,
// ditulis lewat upsert.
type CompanyVision struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CeoID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_vision_ceo" json:"ceo_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CompanyVision) TableName() string {
	return "company_visions"
}

type CompanyMission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CeoID     uuid.UUID `gorm:"type:uuid;not null;index" json:"ceo_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Order     int       `gorm:"column:order;not null" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CompanyMission) TableName() string {
	return "company_missions"
}

type CompanyCoreValue struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CeoID     uuid.UUID `gorm:"type:uuid;not null;index" json:"ceo_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Order     int       `gorm:"column:order;not null" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CompanyCoreValue) TableName() string {
	return "company_core_values"
}
