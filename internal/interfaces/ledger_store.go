package interfaces

import (
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

// AccountStore holds client accounts for the duration of a run
type AccountStore interface {
	GetOrCreate(clientID uint16) *models.Account
	Accounts() []models.Account
}

// AmountStore is the transaction amount ledger. Entries are never evicted.
type AmountStore interface {
	Record(entry models.AmountEntry)
	Lookup(txID uint32) (*models.AmountEntry, bool)
}
