package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

const (
	TopicProjectLifecycle = "org.project.lifecycle.v1"
	TopicOkrLifecycle     = "org.okr.lifecycle.v1"
)

const (
	TypeProjectCreated  = "project.created"
	TypeProjectArchived = "project.archived"
	TypeGoalCreated     = "okr.goal.created"
	TypeGoalDeleted     = "okr.goal.deleted"
)

// OutboxEvent ditulis dalam transaksi yang sama dengan perubahan domain;
// relay worker yang mengirimkannya ke broker.
type OutboxEvent struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CeoID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"ceo_id"`
	Topic      string     `gorm:"type:varchar(100);not null" json:"topic"`
	EventType  string     `gorm:"type:varchar(100);not null" json:"event_type"`
	Payload    []byte     `gorm:"type:jsonb;not null" json:"payload"`
	Status     string     `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	Attempts   int        `gorm:"not null;default:0" json:"attempts"`
	LastError  string     `gorm:"type:text" json:"last_error,omitempty"`
	NextSendAt time.Time  `gorm:"not null" json:"next_send_at"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}
