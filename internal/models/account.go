package models

import "github.com/shopspring/decimal"

// Account represents the balances of a single client
type Account struct {
	ClientID  uint16
	Available decimal.Decimal // may go negative while a dispute is open
	Held      decimal.Decimal
	Locked    bool // set by a chargeback, never cleared
}

// NewAccount returns an empty, unlocked account for the client
func NewAccount(clientID uint16) *Account {
	return &Account{
		ClientID:  clientID,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total is always derived, never stored
func (a Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}
