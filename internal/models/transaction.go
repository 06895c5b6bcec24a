package models

import "github.com/shopspring/decimal"

// TransactionType is the type tag carried by every record
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeDispute    TransactionType = "dispute"
	TypeResolve    TransactionType = "resolve"
	TypeChargeback TransactionType = "chargeback"
)

// Valid reports whether t is one of the five recognized tags
func (t TransactionType) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypeDispute, TypeResolve, TypeChargeback:
		return true
	}
	return false
}

// CarriesAmount reports whether records of this type move funds and so
// must carry an amount
func (t TransactionType) CarriesAmount() bool {
	return t == TypeDeposit || t == TypeWithdrawal
}

// Transaction represents one input record
type Transaction struct {
	Type     TransactionType
	ClientID uint16
	TxID     uint32
	Amount   decimal.NullDecimal // only set for deposit and withdrawal
}
