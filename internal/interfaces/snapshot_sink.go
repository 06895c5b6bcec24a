package interfaces

import (
	"context"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

// SnapshotSink consumes the final account states of a run
type SnapshotSink interface {
	Name() string
	WriteSnapshot(ctx context.Context, runID string, accounts []models.Account) error
}
