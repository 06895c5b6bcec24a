package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models/events"
)

type published struct {
	key   string
	event any
}

type fakePublisher struct {
	sent    []published
	failOn  int
	failErr error
}

func (f *fakePublisher) Publish(_ context.Context, key string, event any) error {
	if f.failErr != nil && len(f.sent) == f.failOn {
		return f.failErr
	}
	f.sent = append(f.sent, published{key: key, event: event})
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestSnapshotSinkPublishesOneEventPerAccount(t *testing.T) {
	pub := &fakePublisher{}
	sink := NewSnapshotSink(pub)
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	sink.now = func() time.Time { return fixed }

	accounts := []models.Account{
		{ClientID: 1, Available: decimal.NewFromInt(3), Held: decimal.NewFromInt(2)},
		{ClientID: 9, Available: decimal.Zero, Held: decimal.Zero, Locked: true},
	}
	require.NoError(t, sink.WriteSnapshot(context.Background(), "run-1", accounts))
	require.Len(t, pub.sent, 2)

	assert.Equal(t, "1", pub.sent[0].key)
	first, ok := pub.sent[0].event.(events.AccountSnapshotted)
	require.True(t, ok)
	assert.Equal(t, "run-1", first.RunID)
	assert.True(t, first.Total.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, fixed, first.OccurredAt)
	assert.NotEmpty(t, first.EventID)

	assert.Equal(t, "9", pub.sent[1].key)
	second := pub.sent[1].event.(events.AccountSnapshotted)
	assert.True(t, second.Locked)
	assert.NotEqual(t, first.EventID, second.EventID)
}

func TestSnapshotSinkStopsOnPublishError(t *testing.T) {
	boom := errors.New("broker down")
	pub := &fakePublisher{failOn: 1, failErr: boom}
	sink := NewSnapshotSink(pub)

	accounts := []models.Account{{ClientID: 1}, {ClientID: 2}, {ClientID: 3}}
	err := sink.WriteSnapshot(context.Background(), "run-2", accounts)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "client 2")
	assert.Len(t, pub.sent, 1)
}
