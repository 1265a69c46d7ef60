package events

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutboxRepo struct {
	pending []OutboxEvent
	sent    []uuid.UUID
	failed  []uuid.UUID
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeOutboxRepo) Queue(ctx context.Context, ceoID uuid.UUID, topic, eventType string, payload any) error {
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id uuid.UUID, sendErr error) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakePublisher struct {
	published []string
	failTopic string
}

func (f *fakePublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	if topic == f.failTopic {
		return errors.New("broker unavailable")
	}
	f.published = append(f.published, topic)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestProcessPending_MarksSentAndFailed(t *testing.T) {
	ok := OutboxEvent{ID: uuid.New(), CeoID: uuid.New(), Topic: TopicProjectLifecycle, Payload: []byte(`{}`)}
	bad := OutboxEvent{ID: uuid.New(), CeoID: uuid.New(), Topic: TopicOkrLifecycle, Payload: []byte(`{}`)}

	repo := &fakeOutboxRepo{pending: []OutboxEvent{ok, bad}}
	pub := &fakePublisher{failTopic: TopicOkrLifecycle}

	relay := NewRelay(repo, pub)
	require.NoError(t, relay.ProcessPending(context.Background()))

	assert.Equal(t, []uuid.UUID{ok.ID}, repo.sent)
	assert.Equal(t, []uuid.UUID{bad.ID}, repo.failed)
	assert.Equal(t, []string{TopicProjectLifecycle}, pub.published)
}

func TestProcessPending_EmptyOutboxIsNoop(t *testing.T) {
	repo := &fakeOutboxRepo{}
	pub := &fakePublisher{}

	relay := NewRelay(repo, pub)
	require.NoError(t, relay.ProcessPending(context.Background()))
	assert.Empty(t, repo.sent)
	assert.Empty(t, pub.published)
}
