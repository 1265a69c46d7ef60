package okr

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultUnit   = "number"
	DefaultWeight = 100
)

type CompanyGoal struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CeoID     uuid.UUID `gorm:"type:uuid;not null;index" json:"ceo_id"`
	Goal      string    `gorm:"type:text;not null" json:"goal"`
	Year      int       `gorm:"not null" json:"year"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Objectives []Objective `gorm:"foreignKey:CompanyGoalID" json:"objectives,omitempty"`
}

func (CompanyGoal) TableName() string {
	return "company_goals"
}

type Objective struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CeoID         uuid.UUID `gorm:"type:uuid;not null;index" json:"ceo_id"`
	CompanyGoalID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_goal_id"`
	Division      string    `gorm:"type:varchar(255);not null" json:"division"`
	Objective     string    `gorm:"type:text;not null" json:"objective"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	KeyResults []KeyResult `gorm:"foreignKey:ObjectiveID" json:"key_results,omitempty"`
}

func (Objective) TableName() string {
	return "objectives"
}

type KeyResult struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ObjectiveID uuid.UUID `gorm:"type:uuid;not null;index" json:"objective_id"`
	KeyResult   string    `gorm:"type:text;not null" json:"key_result"`
	Target      float64   `gorm:"not null;default:0" json:"target"`
	Actual      float64   `gorm:"not null;default:0" json:"actual"`
	Unit        string    `gorm:"type:varchar(50);not null;default:number" json:"unit"`
	Weight      float64   `gorm:"not null;default:100" json:"weight"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	ActionPlans []ActionPlan `gorm:"foreignKey:KeyResultID" json:"action_plans,omitempty"`
}

func (KeyResult) TableName() string {
	return "key_results"
}

type ActionPlan struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	KeyResultID uuid.UUID `gorm:"type:uuid;not null;index" json:"key_result_id"`
	Activity    string    `gorm:"type:text;not null" json:"activity"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ActionPlan) TableName() string {
	return "action_plans"
}
