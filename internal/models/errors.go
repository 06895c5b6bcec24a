package models

import "errors"

// Sentinel errors shared by the reader and the engine. Whether one aborts
// the run is decided by ledger.Engine.IsRecoverable.
var (
	ErrMissingAmount          = errors.New("missing amount")
	ErrMalformedRecord        = errors.New("malformed record")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrUnresolvedReference    = errors.New("unresolved transaction reference")
	ErrLockedAccount          = errors.New("account locked")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidTransition      = errors.New("invalid dispute transition")
	ErrClientMismatch         = errors.New("transaction belongs to another client")
)
