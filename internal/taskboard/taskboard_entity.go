package taskboard

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusArchived  = "archived"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

const (
	MemberRoleMember  = "member"
	MemberRoleManager = "manager"
)

// DefaultLabels diberikan ke setiap project baru.
var DefaultLabels = []string{"Backend", "Frontend", "Design", "Mobile", "Documentation"}

type Labels []string

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CeoID       uuid.UUID `gorm:"type:uuid;not null;index" json:"ceo_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"type:varchar(20);not null;default:active" json:"status"`
	Labels      Labels    `gorm:"type:jsonb;serializer:json" json:"labels"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`

	// Diisi lewat subquery saat listing.
	TaskCount int64 `gorm:"->" json:"task_count"`
}

func (Project) TableName() string {
	return "projects"
}

type ProjectMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Role      string    `gorm:"type:varchar(20);not null;default:member" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	User *MemberUser `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}

// MemberUser adalah proyeksi ringan tabel users untuk ditampilkan di
// daftar member project.
type MemberUser struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

func (MemberUser) TableName() string {
	return "users"
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Category    string     `gorm:"type:varchar(100);not null" json:"category"`
	StoryPoint  int        `gorm:"not null;default:0" json:"story_point"`
	Status      string     `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	SprintGroup string     `gorm:"type:varchar(100)" json:"sprint_group"`
	MonthGroup  string     `gorm:"type:varchar(20)" json:"month_group"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Assignee *MemberUser `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}

func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	}
	return false
}

func ValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}
