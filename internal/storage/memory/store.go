package memory

import (
	"sort"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

// AccountStore is an in-memory implementation of interfaces.AccountStore.
// It is owned by a single engine and is not safe for concurrent use.
type AccountStore struct {
	accounts map[uint16]*models.Account
}

// NewAccountStore creates and returns an empty AccountStore
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[uint16]*models.Account),
	}
}

// GetOrCreate returns the account for clientID, creating an empty one on
// first sight. The returned pointer is the stored account.
func (s *AccountStore) GetOrCreate(clientID uint16) *models.Account {
	if account, exists := s.accounts[clientID]; exists {
		return account
	}
	account := models.NewAccount(clientID)
	s.accounts[clientID] = account
	return account
}

// Accounts returns a copy of every account ordered by client id
func (s *AccountStore) Accounts() []models.Account {
	result := make([]models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		result = append(result, *account)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ClientID < result[j].ClientID
	})
	return result
}

// AmountStore is an in-memory, append-only transaction amount ledger
type AmountStore struct {
	entries map[uint32]*models.AmountEntry
}

// NewAmountStore creates an empty amount ledger
func NewAmountStore() *AmountStore {
	return &AmountStore{
		entries: make(map[uint32]*models.AmountEntry),
	}
}

// Record stores entry under its tx id. A repeated tx id replaces the
// earlier entry.
func (s *AmountStore) Record(entry models.AmountEntry) {
	s.entries[entry.TxID] = &entry
}

// Lookup returns the stored entry itself, so strict mode can update its
// dispute status in place
func (s *AmountStore) Lookup(txID uint32) (*models.AmountEntry, bool) {
	entry, exists := s.entries[txID]
	return entry, exists
}

// Len is used by tests and the run summary
func (s *AmountStore) Len() int {
	return len(s.entries)
}

// Compile-time check: ensure the stores implement their interfaces
var (
	_ interfaces.AccountStore = (*AccountStore)(nil)
	_ interfaces.AmountStore  = (*AmountStore)(nil)
)
