package ledger

import (
	"errors"
	"fmt"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
	"go.uber.org/zap"
)

// Engine applies transaction records to client accounts.
// It owns both the account store and the amount ledger for a whole run and
// must be driven by a single caller, one record at a time.
type Engine struct {
	accounts interfaces.AccountStore
	amounts  interfaces.AmountStore
	opts     Options
	logger   *zap.Logger
	stats    Stats
}

// NewEngine creates an Engine on top of the given stores.
// A nil logger disables logging.
func NewEngine(accounts interfaces.AccountStore, amounts interfaces.AmountStore, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		accounts: accounts,
		amounts:  amounts,
		opts:     opts,
		logger:   logger,
		stats:    newStats(),
	}
}

// Apply processes one record. It returns an error only for conditions that
// must abort the run; recoverable conditions are counted and skipped.
func (e *Engine) Apply(tx models.Transaction) error {
	err := e.apply(tx)
	if err == nil {
		e.stats.Applied++
		return nil
	}

	if !e.IsRecoverable(err) {
		return fmt.Errorf("tx %d client %d: %w", tx.TxID, tx.ClientID, err)
	}

	e.stats.skip(err)
	e.logger.Debug("record skipped",
		zap.String("type", string(tx.Type)),
		zap.Uint16("client", tx.ClientID),
		zap.Uint32("tx", tx.TxID),
		zap.String("reason", err.Error()),
	)
	return nil
}

func (e *Engine) apply(tx models.Transaction) error {
	if !tx.Type.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidTransactionType, tx.Type)
	}

	client := e.accounts.GetOrCreate(tx.ClientID)

	// recorded ahead of the lock check
	if e.recordsAmount(tx) && (!client.Locked || e.opts.RecordAmountsWhenLocked) {
		e.amounts.Record(models.AmountEntry{
			TxID:     tx.TxID,
			ClientID: tx.ClientID,
			Type:     tx.Type,
			Amount:   tx.Amount.Decimal,
		})
	}

	if client.Locked {
		return models.ErrLockedAccount
	}

	switch tx.Type {
	case models.TypeDeposit:
		if !tx.Amount.Valid {
			return models.ErrMissingAmount
		}
		client.Available = client.Available.Add(tx.Amount.Decimal)

	case models.TypeWithdrawal:
		if !tx.Amount.Valid {
			return models.ErrMissingAmount
		}
		if client.Available.LessThan(tx.Amount.Decimal) {
			return models.ErrInsufficientFunds
		}
		client.Available = client.Available.Sub(tx.Amount.Decimal)

	default:
		entry, err := e.reference(tx)
		if err != nil {
			return err
		}
		e.settle(client, tx.Type, entry)
	}

	return nil
}

// recordsAmount reports whether tx feeds the amount ledger
func (e *Engine) recordsAmount(tx models.Transaction) bool {
	if !tx.Amount.Valid {
		return false
	}
	return tx.Type.CarriesAmount() || e.opts.RecordReferenceAmounts
}

// reference resolves the transaction a dispute, resolve or chargeback points
// at and checks it against the enabled guards
func (e *Engine) reference(tx models.Transaction) (*models.AmountEntry, error) {
	entry, exists := e.amounts.Lookup(tx.TxID)
	if !exists {
		return nil, models.ErrUnresolvedReference
	}

	if e.opts.VerifyOwner && entry.ClientID != tx.ClientID {
		return nil, models.ErrClientMismatch
	}

	if e.opts.StrictDisputes {
		next, err := transition(entry.Status, tx.Type)
		if err != nil {
			return nil, err
		}
		entry.Status = next
	}

	return entry, nil
}

func (e *Engine) settle(client *models.Account, txType models.TransactionType, entry *models.AmountEntry) {
	switch txType {
	case models.TypeDispute:
		client.Available = client.Available.Sub(entry.Amount)
		client.Held = client.Held.Add(entry.Amount)
	case models.TypeResolve:
		client.Available = client.Available.Add(entry.Amount)
		client.Held = client.Held.Sub(entry.Amount)
	case models.TypeChargeback:
		client.Held = client.Held.Sub(entry.Amount)
		client.Locked = true
	}
}

// transition gates dispute lifecycle changes in strict mode
func transition(from models.DisputeStatus, txType models.TransactionType) (models.DisputeStatus, error) {
	switch {
	case txType == models.TypeDispute && (from == models.StatusNormal || from == models.StatusResolved):
		return models.StatusDisputed, nil
	case txType == models.TypeResolve && from == models.StatusDisputed:
		return models.StatusResolved, nil
	case txType == models.TypeChargeback && from == models.StatusDisputed:
		return models.StatusChargedBack, nil
	}
	return from, fmt.Errorf("%w: %s from %s", models.ErrInvalidTransition, txType, from)
}

// IsRecoverable reports whether err only causes the record to be skipped
func (e *Engine) IsRecoverable(err error) bool {
	switch {
	case errors.Is(err, models.ErrMissingAmount):
		return e.opts.MissingAmount == PolicySkip
	case errors.Is(err, models.ErrUnresolvedReference),
		errors.Is(err, models.ErrLockedAccount),
		errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrClientMismatch):
		return true
	}
	return false
}

// Snapshot returns the current state of every account seen so far
func (e *Engine) Snapshot() []models.Account {
	return e.accounts.Accounts()
}

// Stats returns a copy of the counters collected so far
func (e *Engine) Stats() Stats {
	return e.stats.clone()
}
