package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxAttempts = 5

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Queue(ctx context.Context, ceoID uuid.UUID, topic, eventType string, payload any) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, sendErr error) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Queue(ctx context.Context, ceoID uuid.UUID, topic, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}

	event := &OutboxEvent{
		ID:         uuid.New(),
		CeoID:      ceoID,
		Topic:      topic,
		EventType:  eventType,
		Payload:    body,
		Status:     StatusPending,
		NextSendAt: time.Now(),
	}

	if r.tx != nil {
		query := `
        INSERT INTO outbox_events (id, ceo_id, topic, event_type, payload, status, attempts, next_send_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, 0, $7, NOW(), NOW())
    `
		_, err := r.tx.ExecContext(
			ctx, query,
			event.ID, event.CeoID, event.Topic, event.EventType, event.Payload, event.Status, event.NextSendAt,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	var pending []OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_send_at <= ?", StatusPending, time.Now()).
		Order("created_at ASC").
		Limit(limit).
		Find(&pending).Error
	return pending, err
}

func (r *repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  StatusSent,
			"sent_at": now,
		}).Error
}

// MarkFailed menaikkan attempt dengan backoff eksponensial; setelah
// maxAttempts event ditandai failed dan tidak dicoba lagi.
func (r *repository) MarkFailed(ctx context.Context, id uuid.UUID, sendErr error) error {
	var event OutboxEvent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return err
	}

	attempts := event.Attempts + 1
	updates := map[string]any{
		"attempts":   attempts,
		"last_error": sendErr.Error(),
	}

	if attempts >= maxAttempts {
		updates["status"] = StatusFailed
	} else {
		backoff := time.Duration(1<<attempts) * time.Second
		updates["next_send_at"] = time.Now().Add(backoff)
	}

	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(updates).Error
}
