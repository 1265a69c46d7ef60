package events

import (
	"context"
	"time"

	"go-orgkit/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	relayBatchSize = 50
	relayInterval  = 5 * time.Second
)

// Relay memindahkan event pending dari tabel outbox ke broker. Kirim
// dilakukan per event supaya satu kegagalan tidak menahan sisa batch.
type Relay struct {
	repo      Repository
	publisher kafka.Publisher
	logger    *zap.Logger
}

func NewRelay(repo Repository, publisher kafka.Publisher, logger ...*zap.Logger) *Relay {
	l := zap.L().Named("events.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("events.relay")
	}
	return &Relay{repo: repo, publisher: publisher, logger: l}
}

// Run memproses outbox sampai context dibatalkan.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(relayInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("interval", relayInterval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if err := r.ProcessPending(ctx); err != nil {
				r.logger.Error("outbox batch failed", zap.Error(err))
			}
		}
	}
}

func (r *Relay) ProcessPending(ctx context.Context) error {
	pending, err := r.repo.ListPending(ctx, relayBatchSize)
	if err != nil {
		return err
	}

	for _, event := range pending {
		if err := r.publisher.Publish(ctx, event.Topic, event.CeoID.String(), event.Payload); err != nil {
			if markErr := r.repo.MarkFailed(ctx, event.ID, err); markErr != nil {
				r.logger.Error("mark failed error",
					zap.String("event_id", event.ID.String()),
					zap.Error(markErr),
				)
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("mark sent error",
				zap.String("event_id", event.ID.String()),
				zap.Error(err),
			)
			continue
		}

		r.logger.Debug("event relayed",
			zap.String("event_id", event.ID.String()),
			zap.String("topic", event.Topic),
			zap.String("type", event.EventType),
		)
	}

	return nil
}
