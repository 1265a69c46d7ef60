package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	CeoID        *uuid.UUID     `gorm:"column:ceo_id;type:uuid;index"`
	DepartmentID *uuid.UUID     `gorm:"column:department_id;type:uuid"`
	SuperiorID   *uuid.UUID     `gorm:"column:superior_id;type:uuid"`
	Name         string         `gorm:"column:name;type:varchar(255);not null"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex:uq_user_email"`
	Password     string         `gorm:"column:password;type:text;not null"`
	Role         string         `gorm:"column:role;type:varchar(50);default:staff"`
	CompanyName  string         `gorm:"column:company_name;type:varchar(255)"`
	PhoneNumber  string         `gorm:"column:phone_number;type:varchar(20)"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`

	// Relasi atasan langsung (reporting line, self-referential)
	Superior *UserSuperior `gorm:"foreignKey:SuperiorID;references:ID"`
}

// UserSuperior adalah sub-struct untuk join data minimal atasan
type UserSuperior struct {
	ID   uuid.UUID `gorm:"primaryKey"`
	Name string    `gorm:"column:name"`
	Role string    `gorm:"column:role"`
}

func (UserSuperior) TableName() string {
	return "users"
}
