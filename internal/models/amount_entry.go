package models

import "github.com/shopspring/decimal"

// DisputeStatus is only tracked when the engine runs in strict mode
type DisputeStatus int

const (
	StatusNormal DisputeStatus = iota
	StatusDisputed
	StatusResolved
	StatusChargedBack
)

func (s DisputeStatus) String() string {
	switch s {
	case StatusDisputed:
		return "disputed"
	case StatusResolved:
		return "resolved"
	case StatusChargedBack:
		return "charged_back"
	default:
		return "normal"
	}
}

// AmountEntry is what the amount ledger keeps for every deposit and
// withdrawal so later disputes can reference it
type AmountEntry struct {
	TxID     uint32
	ClientID uint16          // client of the recording row
	Type     TransactionType // deposit or withdrawal, unless reference amounts are recorded
	Amount   decimal.Decimal
	Status   DisputeStatus // only advanced in strict mode
}
