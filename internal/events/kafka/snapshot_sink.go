package kafka

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models/events"
)

// SnapshotSink publishes one AccountSnapshotted event per account
type SnapshotSink struct {
	publisher interfaces.EventPublisher
	now       func() time.Time // replaced in tests
}

// NewSnapshotSink publishes through publisher, whose topic decides where
// the events land
func NewSnapshotSink(publisher interfaces.EventPublisher) *SnapshotSink {
	return &SnapshotSink{publisher: publisher, now: time.Now}
}

func (s *SnapshotSink) Name() string { return "kafka" }

// WriteSnapshot stops at the first publish error; events already sent
// are not retracted
func (s *SnapshotSink) WriteSnapshot(ctx context.Context, runID string, accounts []models.Account) error {
	occurredAt := s.now().UTC()
	for _, account := range accounts {
		event := events.AccountSnapshotted{
			EventID:    uuid.New().String(),
			RunID:      runID,
			ClientID:   account.ClientID,
			Available:  account.Available,
			Held:       account.Held,
			Total:      account.Total(),
			Locked:     account.Locked,
			OccurredAt: occurredAt,
		}
		key := strconv.FormatUint(uint64(account.ClientID), 10)
		if err := s.publisher.Publish(ctx, key, event); err != nil {
			return fmt.Errorf("publish client %d: %w", account.ClientID, err)
		}
	}
	return nil
}

var _ interfaces.SnapshotSink = (*SnapshotSink)(nil)
