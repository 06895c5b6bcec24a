package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/ledger"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/output"
)

// RecordSource yields records in input order and io.EOF at the end
type RecordSource interface {
	Next() (models.Transaction, error)
}

type Params struct {
	RunID     string
	Source    RecordSource
	Engine    *ledger.Engine
	Malformed ledger.Policy
	Format    output.Format
	Out       io.Writer
	Sinks     []interfaces.SnapshotSink
	Logger    *zap.Logger
}

// Summary describes a completed run
type Summary struct {
	Stats     ledger.Stats
	Malformed int
	Clients   int
}

// Run drains the source into the engine and emits the final snapshot.
// A fatal error stops the run before anything is written.
func Run(ctx context.Context, p Params) (Summary, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run_id", p.RunID))

	var summary Summary
	for {
		tx, err := p.Source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, models.ErrMalformedRecord) && p.Malformed == ledger.PolicySkip {
				summary.Malformed++
				logger.Warn("malformed record skipped", zap.Error(err))
				continue
			}
			return summary, fmt.Errorf("read records: %w", err)
		}

		if err := p.Engine.Apply(tx); err != nil {
			return summary, err
		}
	}

	accounts := p.Engine.Snapshot()
	summary.Stats = p.Engine.Stats()
	summary.Clients = len(accounts)

	if err := output.Write(p.Out, p.Format, accounts); err != nil {
		return summary, fmt.Errorf("write output: %w", err)
	}

	for _, sink := range p.Sinks {
		if err := sink.WriteSnapshot(ctx, p.RunID, accounts); err != nil {
			return summary, fmt.Errorf("%s sink: %w", sink.Name(), err)
		}
		logger.Info("snapshot delivered", zap.String("sink", sink.Name()), zap.Int("accounts", len(accounts)))
	}

	logger.Info("run completed",
		zap.Int("applied", summary.Stats.Applied),
		zap.Int("skipped", summary.Stats.TotalSkipped()),
		zap.Any("skipped_by_reason", summary.Stats.Skipped),
		zap.Int("malformed", summary.Malformed),
		zap.Int("clients", summary.Clients),
	)
	return summary, nil
}
