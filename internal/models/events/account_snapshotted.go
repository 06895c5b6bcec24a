package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSnapshotted is published once per account at the end of a
// successful run
type AccountSnapshotted struct {
	EventID    string          `json:"event_id"`    // unique per message
	RunID      string          `json:"run_id"`      // shared by every event of one run
	ClientID   uint16          `json:"client_id"`   // also the message key
	Available  decimal.Decimal `json:"available"`   // may be negative
	Held       decimal.Decimal `json:"held"`        // funds under dispute
	Total      decimal.Decimal `json:"total"`       // available + held
	Locked     bool            `json:"locked"`      // frozen by a chargeback
	OccurredAt time.Time       `json:"occurred_at"` // UTC, same for the whole snapshot
}
